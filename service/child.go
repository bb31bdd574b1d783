package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/response"
	"Doodly/pkg/snowflake"
	"context"
	"net/http"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	pinPattern      = regexp.MustCompile(`^[0-9]{4,6}$`)
	usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)
)

var _ IChildService = (*ChildService)(nil)

type IChildService interface {
	CreateChild(ctx context.Context, parentID uint64, username, name, ageGroup, pin, avatarURL string) (*models.Child, error)
	ListChildren(ctx context.Context, parentID uint64) ([]*models.Child, error)
	GetByID(ctx context.Context, childID uint64) (*models.Child, error)
	GetOwnedChild(ctx context.Context, parentID, childID uint64) (*models.Child, error)
	UpdateChild(ctx context.Context, parentID, childID uint64, fields map[string]interface{}, newPin *string) error
	SetConsent(ctx context.Context, parentID, childID uint64, consent bool) error
	DeleteChild(ctx context.Context, parentID, childID uint64) error
	DeleteParentAccount(ctx context.Context, parentID uint64) error
}

type ChildService struct {
	DB       *gorm.DB
	ChildDAO *dao.ChildDAO
	PostDAO  *dao.PostDAO
	StatsDAO *dao.UserStatsDAO
	Storage  IStorageService
}

func (s *ChildService) CreateChild(ctx context.Context, parentID uint64, username, name, ageGroup, pin, avatarURL string) (*models.Child, error) {
	if !models.ValidAgeGroup(ageGroup) {
		return nil, response.NewError(http.StatusBadRequest, "unknown age group")
	}
	if !usernamePattern.MatchString(username) {
		return nil, response.NewError(http.StatusBadRequest, "username must be 3-32 lowercase letters, digits or _")
	}
	if !pinPattern.MatchString(pin) {
		return nil, response.NewError(http.StatusBadRequest, "PIN must be 4-6 digits")
	}

	taken, err := s.ChildDAO.IsExist(ctx, "username = ?", username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, response.NewError(http.StatusConflict, "username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		ID:        uint64(snowflake.GenID()),
		ParentID:  parentID,
		Username:  username,
		Name:      name,
		AgeGroup:  ageGroup,
		PinHash:   string(hash),
		AvatarURL: avatarURL,
	}
	if err := s.ChildDAO.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) ListChildren(ctx context.Context, parentID uint64) ([]*models.Child, error) {
	return s.ChildDAO.FindByParentID(ctx, parentID)
}

// GetByID loads a child without an ownership check; child-authenticated
// flows use it to look up their own profile.
func (s *ChildService) GetByID(ctx context.Context, childID uint64) (*models.Child, error) {
	child, err := s.ChildDAO.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, response.NewError(http.StatusNotFound, "child not found")
	}
	return child, nil
}

// GetOwnedChild loads the child and checks the parent owns it.
func (s *ChildService) GetOwnedChild(ctx context.Context, parentID, childID uint64) (*models.Child, error) {
	child, err := s.ChildDAO.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, response.NewError(http.StatusNotFound, "child not found")
	}
	if child.ParentID != parentID {
		return nil, response.NewError(http.StatusForbidden, "not your child profile")
	}
	return child, nil
}

func (s *ChildService) UpdateChild(ctx context.Context, parentID, childID uint64, fields map[string]interface{}, newPin *string) error {
	if _, err := s.GetOwnedChild(ctx, parentID, childID); err != nil {
		return err
	}
	if g, ok := fields["age_group"]; ok {
		if gs, _ := g.(string); !models.ValidAgeGroup(gs) {
			return response.NewError(http.StatusBadRequest, "unknown age group")
		}
	}
	if newPin != nil {
		if !pinPattern.MatchString(*newPin) {
			return response.NewError(http.StatusBadRequest, "PIN must be 4-6 digits")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*newPin), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fields["pin_hash"] = string(hash)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.ChildDAO.UpdateFields(ctx, childID, fields)
}

// SetConsent flips the sharing gate. Without consent a child's approved
// posts stay out of every public listing.
func (s *ChildService) SetConsent(ctx context.Context, parentID, childID uint64, consent bool) error {
	if _, err := s.GetOwnedChild(ctx, parentID, childID); err != nil {
		return err
	}
	return s.ChildDAO.UpdateFields(ctx, childID, map[string]interface{}{"parental_consent": consent})
}

// DeleteChild removes the profile and everything the child created.
func (s *ChildService) DeleteChild(ctx context.Context, parentID, childID uint64) error {
	if _, err := s.GetOwnedChild(ctx, parentID, childID); err != nil {
		return err
	}
	return s.deleteChildData(ctx, childID)
}

// DeleteParentAccount closes the account and cascades all children.
func (s *ChildService) DeleteParentAccount(ctx context.Context, parentID uint64) error {
	children, err := s.ChildDAO.FindByParentID(ctx, parentID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteChildData(ctx, child.ID); err != nil {
			return err
		}
	}
	return s.DB.WithContext(ctx).Where("id = ?", parentID).Delete(&models.Parent{}).Error
}

// likeTally carries a grouped like count per child for the delete walk-back.
type likeTally struct {
	ChildID uint64
	N       int64
}

func (s *ChildService) deleteChildData(ctx context.Context, childID uint64) error {
	// best effort on stored objects, rows go regardless
	posts, err := s.PostDAO.FindAllByChild(ctx, childID, nil)
	if err != nil {
		return err
	}
	postIDs := make([]uint64, 0, len(posts))
	for _, post := range posts {
		_ = s.Storage.Delete(ctx, post.ImageKey)
		postIDs = append(postIDs, post.ID)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// likes other children placed on these posts: their likes_given
		// counters must come back down before the rows disappear
		if len(postIDs) > 0 {
			var likers []likeTally
			err := tx.Model(&models.PostLike{}).
				Select("child_id, COUNT(*) AS n").
				Where("post_id IN ? AND status = 1", postIDs).
				Group("child_id").
				Scan(&likers).Error
			if err != nil {
				return err
			}
			for _, l := range likers {
				if err := s.StatsDAO.IncrCounterTx(tx, l.ChildID, "likes_given", -l.N); err != nil {
					return err
				}
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
		}

		// likes this child gave: the liked posts and their authors keep
		// accurate counts
		var authors []likeTally
		err := tx.Model(&models.PostLike{}).
			Select("posts.child_id AS child_id, COUNT(*) AS n").
			Joins("JOIN posts ON posts.id = post_likes.post_id").
			Where("post_likes.child_id = ? AND post_likes.status = 1", childID).
			Group("posts.child_id").
			Scan(&authors).Error
		if err != nil {
			return err
		}
		for _, a := range authors {
			if err := s.StatsDAO.IncrCounterTx(tx, a.ChildID, "likes_received", -a.N); err != nil {
				return err
			}
		}
		err = tx.Model(&models.Post{}).
			Where("id IN (SELECT post_id FROM post_likes WHERE child_id = ? AND status = 1)", childID).
			Update("likes_count", gorm.Expr(
				"CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
		if err != nil {
			return err
		}

		if err := tx.Where("child_id = ?", childID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", childID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", childID).Delete(&models.UserStats{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", childID).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", childID).Delete(&models.Child{}).Error
	})
}
