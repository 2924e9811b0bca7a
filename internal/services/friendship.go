package services

import (
	"aniverse/internal/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// FriendshipService 维护用户间的对称好友关系状态机。
// 状态：无行（absent）、pending、accepted、blocked，一对用户至多一行，
// 按 (min, max) 规范序存储。所有变更前都先经 edge 读取当前状态，
// 转移是否合法的判断全部集中在这一条读路径上。
//
// InitiatorID 记录产生当前状态的一方：pending 时是请求发起者（只有对方能
// 接受/拒绝），blocked 时是拉黑者（只有拉黑者能解除）。
type FriendshipService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewFriendshipService(db *gorm.DB, notifier *NotificationService) *FriendshipService {
	return &FriendshipService{db: db, notifier: notifier}
}

// edge 按规范序取出两人之间的关系行，不存在返回 nil
func (s *FriendshipService) edge(a, b uint) (*models.Friendship, error) {
	if a > b {
		a, b = b, a
	}
	var f models.Friendship
	err := s.db.Where("user_id1 = ? AND user_id2 = ?", a, b).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Status 返回两人的关系状态，无关系返回空串
func (s *FriendshipService) Status(a, b uint) (string, error) {
	f, err := s.edge(a, b)
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", nil
	}
	return f.Status, nil
}

// SendRequest 发起好友请求：只有无关系时合法，成功后尽力通知对方
func (s *FriendshipService) SendRequest(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	f, err := s.edge(actorID, targetID)
	if err != nil {
		return err
	}
	if f != nil {
		switch f.Status {
		case models.FriendshipPending:
			return ErrRequestPending
		case models.FriendshipAccepted:
			return ErrAlreadyFriends
		case models.FriendshipBlocked:
			return ErrBlocked
		}
	}

	friendship := models.Friendship{
		UserID1:     actorID,
		UserID2:     targetID,
		InitiatorID: actorID,
		Status:      models.FriendshipPending,
		RequestedAt: time.Now(),
	}
	friendship.EnsureCanonicalOrder()
	if err := s.db.Create(&friendship).Error; err != nil {
		return err
	}

	s.notifier.FriendRequested(actorID, targetID)
	return nil
}

// Accept 接受请求：仅 pending 且操作者不是发起者时合法
func (s *FriendshipService) Accept(actorID, otherID uint) error {
	if actorID == otherID {
		return ErrSelfAction
	}
	f, err := s.edge(actorID, otherID)
	if err != nil {
		return err
	}
	if f == nil || f.Status != models.FriendshipPending {
		return ErrNoPendingRequest
	}
	if f.InitiatorID == actorID {
		// 发起者不能替对方接受
		return ErrNoPendingRequest
	}

	now := time.Now()
	if err := s.db.Model(f).Updates(map[string]interface{}{
		"status":      models.FriendshipAccepted,
		"accepted_at": &now,
	}).Error; err != nil {
		return err
	}

	s.notifier.FriendAccepted(actorID, f.InitiatorID)
	return nil
}

// Reject 拒绝请求：仅 pending 且操作者不是发起者时合法，关系行删除
func (s *FriendshipService) Reject(actorID, otherID uint) error {
	if actorID == otherID {
		return ErrSelfAction
	}
	f, err := s.edge(actorID, otherID)
	if err != nil {
		return err
	}
	if f == nil || f.Status != models.FriendshipPending || f.InitiatorID == actorID {
		return ErrNoPendingRequest
	}
	return s.db.Delete(f).Error
}

// Remove 解除好友：仅 accepted 时合法，双方任一方可操作，关系行删除
func (s *FriendshipService) Remove(actorID, otherID uint) error {
	if actorID == otherID {
		return ErrSelfAction
	}
	f, err := s.edge(actorID, otherID)
	if err != nil {
		return err
	}
	if f == nil || f.Status != models.FriendshipAccepted {
		return ErrNotFriends
	}
	return s.db.Delete(f).Error
}

// Block 拉黑：任意状态下都成功，覆盖原状态，InitiatorID 改记拉黑者
func (s *FriendshipService) Block(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	f, err := s.edge(actorID, targetID)
	if err != nil {
		return err
	}
	if f == nil {
		friendship := models.Friendship{
			UserID1:     actorID,
			UserID2:     targetID,
			InitiatorID: actorID,
			Status:      models.FriendshipBlocked,
			RequestedAt: time.Now(),
		}
		friendship.EnsureCanonicalOrder()
		return s.db.Create(&friendship).Error
	}
	return s.db.Model(f).Updates(map[string]interface{}{
		"status":       models.FriendshipBlocked,
		"initiator_id": actorID,
		"accepted_at":  nil,
	}).Error
}

// Unblock 解除拉黑：仅 blocked 且操作者是拉黑者时合法，关系行删除
func (s *FriendshipService) Unblock(actorID, otherID uint) error {
	if actorID == otherID {
		return ErrSelfAction
	}
	f, err := s.edge(actorID, otherID)
	if err != nil {
		return err
	}
	if f == nil || f.Status != models.FriendshipBlocked {
		return ErrNotBlocked
	}
	if f.InitiatorID != actorID {
		return ErrNotBlocker
	}
	return s.db.Delete(f).Error
}

// Friends 返回用户的全部好友
func (s *FriendshipService) Friends(userID uint) ([]models.User, error) {
	ids, err := s.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err = s.db.Where("id IN ?", ids).Order("username").Find(&users).Error
	return users, err
}

// FriendIDs 返回用户全部好友的 ID
func (s *FriendshipService) FriendIDs(userID uint) ([]uint, error) {
	var edges []models.Friendship
	if err := s.db.Where("status = ? AND (user_id1 = ? OR user_id2 = ?)",
		models.FriendshipAccepted, userID, userID).Find(&edges).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherID(userID))
	}
	return ids, nil
}

// PendingIncoming 别人发给我的待处理请求
func (s *FriendshipService) PendingIncoming(userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := s.db.Preload("User1").Preload("User2").
		Where("status = ? AND (user_id1 = ? OR user_id2 = ?) AND initiator_id <> ?",
			models.FriendshipPending, userID, userID, userID).
		Order("requested_at DESC").
		Find(&edges).Error
	return edges, err
}

// PendingSent 我发出去还没被处理的请求
func (s *FriendshipService) PendingSent(userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := s.db.Preload("User1").Preload("User2").
		Where("status = ? AND initiator_id = ?", models.FriendshipPending, userID).
		Order("requested_at DESC").
		Find(&edges).Error
	return edges, err
}

// Blocked 我拉黑的用户
func (s *FriendshipService) Blocked(userID uint) ([]models.User, error) {
	var edges []models.Friendship
	if err := s.db.Where("status = ? AND initiator_id = ?",
		models.FriendshipBlocked, userID).Find(&edges).Error; err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherID(userID))
	}
	var users []models.User
	err := s.db.Where("id IN ?", ids).Order("username").Find(&users).Error
	return users, err
}
