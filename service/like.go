package service

import (
	"Doodly/dao"
	"Doodly/dao/cache"
	"Doodly/models"
	"Doodly/pkg/log"
	"Doodly/pkg/response"
	"Doodly/pkg/timeutil"
	"Doodly/types"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ ILikeService = (*LikeService)(nil)

type ILikeService interface {
	Like(ctx context.Context, childID, postID uint64) (*types.LikeResponse, error)
	Unlike(ctx context.Context, childID, postID uint64) (*types.LikeResponse, error)
}

type LikeService struct {
	DB           *gorm.DB
	PostDAO      *dao.PostDAO
	ChildDAO     *dao.ChildDAO
	LikeDAO      *dao.PostLikeDAO
	StatsDAO     *dao.UserStatsDAO
	PromptStats  *dao.PromptStatsDAO
	Leaderboard  *cache.Leaderboard
	Achievements AchievementEvaluator
}

// Like adds the child's like to an approved post. Repeat likes are a no-op;
// the author earns 2 points on a real state change.
func (s *LikeService) Like(ctx context.Context, childID, postID uint64) (*types.LikeResponse, error) {
	return s.setLiked(ctx, childID, postID, true)
}

// Unlike removes the like and walks every counter back.
func (s *LikeService) Unlike(ctx context.Context, childID, postID uint64) (*types.LikeResponse, error) {
	return s.setLiked(ctx, childID, postID, false)
}

func (s *LikeService) setLiked(ctx context.Context, childID, postID uint64, want bool) (*types.LikeResponse, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != models.PostStatusApproved {
		return nil, response.NewError(http.StatusNotFound, "post not found")
	}
	if post.ChildID == childID {
		return nil, response.NewError(http.StatusBadRequest, "you can't like your own artwork")
	}

	liked, err := s.LikeDAO.IsLiked(ctx, postID, childID)
	if err != nil {
		return nil, err
	}
	if liked == want {
		return s.result(ctx, childID, postID)
	}

	delta := int64(1)
	status := uint8(1)
	if !want {
		delta = -1
		status = 0
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.LikeDAO.SetStatusTx(tx, postID, childID, status); err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).
			Where("id = ? AND likes_count + ? >= 0", postID, delta).
			Update("likes_count", gorm.Expr("likes_count + ?", delta)).Error; err != nil {
			return err
		}
		if err := s.StatsDAO.IncrCounterTx(tx, childID, "likes_given", delta); err != nil {
			return err
		}
		if err := s.StatsDAO.IncrCounterTx(tx, post.ChildID, "likes_received", delta); err != nil {
			return err
		}
		return s.StatsDAO.IncrCounterTx(tx, post.ChildID, "total_points", delta*pointsLikeReceived)
	})
	if err != nil {
		return nil, err
	}

	s.afterLikeChange(ctx, post, childID, delta)
	return s.result(ctx, childID, postID)
}

// afterLikeChange is best effort; the like itself is already committed.
func (s *LikeService) afterLikeChange(ctx context.Context, post *models.Post, likerID uint64, delta int64) {
	author, err := s.ChildDAO.FindByID(ctx, post.ChildID)
	if err == nil && author != nil {
		week := timeutil.ISOWeek(time.Now())
		if err := s.Leaderboard.AddPoints(ctx, week, author.AgeGroup, author.ID, delta*pointsLikeReceived); err != nil {
			log.L.Error("leaderboard update failed", zap.Error(err), zap.Uint64("child_id", author.ID))
		}
	}
	if post.PromptID != nil {
		if err := s.PromptStats.IncrLikes(ctx, *post.PromptID, delta); err != nil {
			log.L.Error("prompt stats update failed", zap.Error(err))
		}
	}
	if delta > 0 && s.Achievements != nil {
		// both sides can cross a threshold: likes_received for the author,
		// likes_given for the liker
		for _, id := range []uint64{post.ChildID, likerID} {
			if _, err := s.Achievements.EvaluateAndUnlock(ctx, id); err != nil {
				log.L.Error("achievement evaluation failed", zap.Error(err), zap.Uint64("child_id", id))
			}
		}
	}
}

func (s *LikeService) result(ctx context.Context, childID, postID uint64) (*types.LikeResponse, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil || post == nil {
		return nil, err
	}
	liked, err := s.LikeDAO.IsLiked(ctx, postID, childID)
	if err != nil {
		return nil, err
	}
	return &types.LikeResponse{Liked: liked, LikesCount: post.LikesCount}, nil
}
