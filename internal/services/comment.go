package services

import (
	"aniverse/internal/models"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// CommentService 处理帖子评论的发布和树形重建
type CommentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewCommentService(db *gorm.DB, notifier *NotificationService) *CommentService {
	return &CommentService{db: db, notifier: notifier}
}

// Create 发布评论，parentID 非空时为楼中楼回复。
// 评论落库成功后同步派生通知（尽力而为，通知失败不影响返回）。
func (s *CommentService) Create(authorID, postID uint, content string, parentID *uint) (uint, error) {
	if strings.TrimSpace(content) == "" {
		return 0, ErrInvalidInput
	}

	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrNotFound
			}
			return 0, err
		}
		if parent.PostID != postID {
			// 父评论必须在同一帖子下
			return 0, ErrInvalidInput
		}
	}

	comment := models.Comment{
		PostID:   postID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return 0, err
	}

	s.notifier.CommentCreated(&comment)
	return comment.ID, nil
}

// Thread 把帖子下的平铺评论重建成楼层树。
// 按创建时间升序取出，父评论必然先于子评论入库，所以单趟遍历即可：
// 边扫边建 id 索引，根评论进结果集，回复挂到父节点的 Replies 上。
// 父评论不在索引里的孤儿（父被删或数据不一致）静默丢弃，不中断渲染。
// 根的顺序和各层回复的顺序都保持创建时间升序。
func (s *CommentService) Thread(postID uint) ([]*models.Comment, error) {
	var flat []*models.Comment
	if err := s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&flat).Error; err != nil {
		return nil, err
	}

	index := make(map[uint]*models.Comment, len(flat))
	roots := make([]*models.Comment, 0)

	for _, c := range flat {
		index[c.ID] = c
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := index[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
		// else: 孤儿评论，丢弃
	}
	return roots, nil
}

// Count 帖子的评论总数
func (s *CommentService) Count(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
