package services

import (
	"aniverse/internal/models"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// NotificationService 负责站内通知的派生和收件箱维护。
// 所有 Fanout 方法都是尽力而为：在主动作提交之后同步调用，
// 任何组装或写入失败只记日志，绝不影响主动作的结果。
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// CommentCreated 评论落库后派生通知：
// 帖子作者收 post_reply（自己评论自己的帖子不通知），
// 楼中楼另外给父评论作者发 comment_reply（两者独立，可能同时产生）。
func (s *NotificationService) CommentCreated(comment *models.Comment) {
	var post models.Post
	if err := s.db.First(&post, comment.PostID).Error; err != nil {
		log.Printf("notification: load post %d failed: %v", comment.PostID, err)
		return
	}
	var actor models.User
	if err := s.db.First(&actor, comment.UserID).Error; err != nil {
		log.Printf("notification: load user %d failed: %v", comment.UserID, err)
		return
	}

	link := fmt.Sprintf("/community/posts/%d#comment-%d", post.ID, comment.ID)

	if post.UserID != comment.UserID {
		s.create(models.Notification{
			UserID:  post.UserID,
			ActorID: &actor.ID,
			Type:    models.NotificationTypePostReply,
			Content: fmt.Sprintf("%s 评论了你的帖子《%s》", actor.Username, post.Title),
			LinkURL: link,
		})
	}

	if comment.ParentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *comment.ParentID).Error; err != nil {
			log.Printf("notification: load parent comment %d failed: %v", *comment.ParentID, err)
			return
		}
		if parent.UserID != comment.UserID {
			s.create(models.Notification{
				UserID:  parent.UserID,
				ActorID: &actor.ID,
				Type:    models.NotificationTypeCommentReply,
				Content: fmt.Sprintf("%s 在《%s》下回复了你的评论", actor.Username, post.Title),
				LinkURL: link,
			})
		}
	}
}

// FriendRequested 好友请求落库后通知接收方
func (s *NotificationService) FriendRequested(requesterID, targetID uint) {
	var actor models.User
	if err := s.db.First(&actor, requesterID).Error; err != nil {
		log.Printf("notification: load user %d failed: %v", requesterID, err)
		return
	}
	s.create(models.Notification{
		UserID:  targetID,
		ActorID: &actor.ID,
		Type:    models.NotificationTypeFriendRequest,
		Content: fmt.Sprintf("%s 请求添加你为好友", actor.Username),
		LinkURL: "/social/friends",
	})
}

// FriendAccepted 请求被接受后通知当初的发起方
func (s *NotificationService) FriendAccepted(accepterID, requesterID uint) {
	var actor models.User
	if err := s.db.First(&actor, accepterID).Error; err != nil {
		log.Printf("notification: load user %d failed: %v", accepterID, err)
		return
	}
	s.create(models.Notification{
		UserID:  requesterID,
		ActorID: &actor.ID,
		Type:    models.NotificationTypeFriendAccept,
		Content: fmt.Sprintf("%s 接受了你的好友请求", actor.Username),
		LinkURL: "/social/friends",
	})
}

func (s *NotificationService) create(n models.Notification) {
	if err := s.db.Create(&n).Error; err != nil {
		log.Printf("notification: create %s for user %d failed: %v", n.Type, n.UserID, err)
	}
}

// List 返回用户的通知，onlyUnread 只取未读，limit <= 0 不限量
func (s *NotificationService) List(ownerID uint, onlyUnread bool, limit int) ([]models.Notification, error) {
	query := s.db.Preload("Actor").Where("user_id = ?", ownerID).Order("created_at DESC")
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var notifications []models.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}

// CountUnread 未读通知数
func (s *NotificationService) CountUnread(ownerID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", ownerID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 标记单条已读；通知不存在或不属于 owner 时返回 false，不报错
func (s *NotificationService) MarkRead(id, ownerID uint) (bool, error) {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAllRead 一次性标记用户全部未读为已读
func (s *NotificationService) MarkAllRead(ownerID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", ownerID, false).
		Update("is_read", true).Error
}
