package services

import (
	"aniverse/internal/models"
	"strings"

	"gorm.io/gorm"
)

// MessageService 处理用户私信和会话视图
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send 发送私信，返回消息 ID
func (s *MessageService) Send(senderID, receiverID uint, content string) (uint, error) {
	if senderID == receiverID {
		return 0, ErrSelfAction
	}
	if strings.TrimSpace(content) == "" {
		return 0, ErrInvalidInput
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", receiverID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNotFound
	}

	msg := models.DirectMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Conversation 返回两人之间最近 limit 条消息，按时间升序（适合直接渲染）
func (s *MessageService) Conversation(userID, otherID uint, limit int) ([]models.DirectMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []models.DirectMessage
	err := s.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// 倒序取最近 N 条后翻转回升序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Conversations 会话列表：每个对端一条预览，带最后一条消息和未读数，按最近活跃排序
func (s *MessageService) Conversations(ownerID uint) ([]models.ConversationPreview, error) {
	var messages []models.DirectMessage
	if err := s.db.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", ownerID, ownerID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	previews := make([]models.ConversationPreview, 0)
	seen := make(map[uint]int) // 对端 ID -> previews 下标

	for _, m := range messages {
		other := m.Sender
		otherID := m.SenderID
		if m.SenderID == ownerID {
			other = m.Receiver
			otherID = m.ReceiverID
		}

		idx, ok := seen[otherID]
		if !ok {
			// 消息按时间倒序，首见即该会话的最后一条
			previews = append(previews, models.ConversationPreview{
				OtherUserID:   otherID,
				OtherUsername: other.Username,
				OtherAvatar:   other.AvatarURL,
				LastContent:   m.Content,
				LastSentAt:    m.CreatedAt,
			})
			idx = len(previews) - 1
			seen[otherID] = idx
		}
		if m.ReceiverID == ownerID && !m.IsRead {
			previews[idx].UnreadCount++
		}
	}
	return previews, nil
}

// MarkConversationRead 把对端发给 owner 的未读消息全部置为已读（打开会话时调用）
func (s *MessageService) MarkConversationRead(ownerID, otherID uint) error {
	return s.db.Model(&models.DirectMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, ownerID, false).
		Update("is_read", true).Error
}

// CountUnread 用户的未读私信总数
func (s *MessageService) CountUnread(ownerID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.DirectMessage{}).
		Where("receiver_id = ? AND is_read = ?", ownerID, false).
		Count(&count).Error
	return count, err
}
