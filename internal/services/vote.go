package services

import (
	"aniverse/internal/models"
	"errors"

	"gorm.io/gorm"
)

// Tally 目标上物化的赞/踩计数
type Tally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// VoteService 维护可撤销投票及目标上的物化计数。
// 同一用户对同一目标：无票则建，同向再投则删（toggle off），反向则原地改投。
// 每次变更后在同一事务内按事实行全量重算计数写回目标，从不做增量加减。
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Apply 处理一次投票动作，返回最新计数和该用户的最终投票方向
// （up / down / 空串表示无票，供前端回显按钮状态）。
func (s *VoteService) Apply(actorID, targetID uint, kind, polarity string) (Tally, string, error) {
	if kind != models.VoteKindPost && kind != models.VoteKindReview {
		return Tally{}, models.PolarityNone, ErrInvalidInput
	}
	if polarity != models.PolarityUp && polarity != models.PolarityDown {
		return Tally{}, models.PolarityNone, ErrInvalidInput
	}
	if err := s.targetExists(targetID, kind); err != nil {
		return Tally{}, models.PolarityNone, err
	}

	var tally Tally
	resulting := models.PolarityNone

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND target_id = ? AND target_kind = ?", actorID, targetID, kind).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 首次投票
			vote := models.Vote{
				UserID:     actorID,
				TargetID:   targetID,
				TargetKind: kind,
				Polarity:   polarity,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			resulting = polarity
		case err != nil:
			return err
		case existing.Polarity == polarity:
			// 同向再投，撤销
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			resulting = models.PolarityNone
		default:
			// 反向改投
			if err := tx.Model(&existing).Update("polarity", polarity).Error; err != nil {
				return err
			}
			resulting = polarity
		}

		t, err := countVotes(tx, targetID, kind)
		if err != nil {
			return err
		}
		tally = t
		return writeTally(tx, targetID, kind, t)
	})
	if err != nil {
		return Tally{}, models.PolarityNone, err
	}
	return tally, resulting, nil
}

// Tally 读取目标当前的物化计数
func (s *VoteService) Tally(targetID uint, kind string) (Tally, error) {
	return countVotes(s.db, targetID, kind)
}

// UserPolarity 返回用户对目标的当前投票方向，无票返回空串
func (s *VoteService) UserPolarity(actorID, targetID uint, kind string) (string, error) {
	var vote models.Vote
	err := s.db.Where("user_id = ? AND target_id = ? AND target_kind = ?", actorID, targetID, kind).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PolarityNone, nil
	}
	if err != nil {
		return models.PolarityNone, err
	}
	return vote.Polarity, nil
}

func (s *VoteService) targetExists(targetID uint, kind string) error {
	var count int64
	var err error
	if kind == models.VoteKindPost {
		err = s.db.Model(&models.Post{}).Where("id = ?", targetID).Count(&count).Error
	} else {
		err = s.db.Model(&models.Review{}).Where("id = ?", targetID).Count(&count).Error
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// countVotes 按事实行统计赞/踩，是计数的唯一权威来源
func countVotes(tx *gorm.DB, targetID uint, kind string) (Tally, error) {
	var up, down int64
	if err := tx.Model(&models.Vote{}).
		Where("target_id = ? AND target_kind = ? AND polarity = ?", targetID, kind, models.PolarityUp).
		Count(&up).Error; err != nil {
		return Tally{}, err
	}
	if err := tx.Model(&models.Vote{}).
		Where("target_id = ? AND target_kind = ? AND polarity = ?", targetID, kind, models.PolarityDown).
		Count(&down).Error; err != nil {
		return Tally{}, err
	}
	return Tally{Upvotes: int(up), Downvotes: int(down)}, nil
}

func writeTally(tx *gorm.DB, targetID uint, kind string, t Tally) error {
	updates := map[string]interface{}{
		"upvotes":   t.Upvotes,
		"downvotes": t.Downvotes,
	}
	if kind == models.VoteKindPost {
		return tx.Model(&models.Post{}).Where("id = ?", targetID).Updates(updates).Error
	}
	return tx.Model(&models.Review{}).Where("id = ?", targetID).Updates(updates).Error
}
