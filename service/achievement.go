package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/timeutil"
	"Doodly/types"
	"context"
)

// Criteria tags drive the evaluator; each one maps to a counter or a derived
// count over the child's approved posts.
const (
	CriteriaPosts         = "posts"
	CriteriaLikesGiven    = "likes_given"
	CriteriaLikesReceived = "likes_received"
	CriteriaViewsReceived = "views_received"
	CriteriaCurrentStreak = "current_streak"
	CriteriaBestStreak    = "best_streak"
	CriteriaMorningPosts  = "morning_posts" // before noon ET
	CriteriaEarlyPosts    = "early_posts"   // before 9am ET
	CriteriaNightPosts    = "night_posts"   // 8pm or later ET
	CriteriaWeekendPosts  = "weekend_posts"
	CriteriaTripleDay     = "triple_day" // all three slots in one day
	CriteriaLevel         = "level"
)

// Achievement is one badge definition. The catalog is static; unlocks live in
// the user_achievements ledger.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Criteria    string
	Target      int64
}

var Catalog = []Achievement{
	{"first_post", "First Masterpiece", "Share your very first drawing", "🎨", CriteriaPosts, 1},
	{"posts_10", "Busy Artist", "Share 10 drawings", "🖌️", CriteriaPosts, 10},
	{"posts_50", "Prolific Painter", "Share 50 drawings", "🖼️", CriteriaPosts, 50},
	{"posts_100", "Century of Art", "Share 100 drawings", "🏛️", CriteriaPosts, 100},
	{"streak_3", "Warming Up", "Draw 3 days in a row", "🔥", CriteriaCurrentStreak, 3},
	{"streak_7", "One Week Wonder", "Draw 7 days in a row", "📅", CriteriaBestStreak, 7},
	{"streak_30", "Monthly Master", "Draw 30 days in a row", "🗓️", CriteriaBestStreak, 30},
	{"kind_heart", "Kind Heart", "Like 10 drawings by other artists", "💛", CriteriaLikesGiven, 10},
	{"super_supporter", "Super Supporter", "Like 50 drawings by other artists", "🤝", CriteriaLikesGiven, 50},
	{"crowd_pleaser", "Crowd Pleaser", "Collect 10 likes on your art", "⭐", CriteriaLikesReceived, 10},
	{"community_star", "Community Star", "Collect 100 likes on your art", "🌟", CriteriaLikesReceived, 100},
	{"spotlight", "In the Spotlight", "Your art was viewed 100 times", "👀", CriteriaViewsReceived, 100},
	{"early_bird", "Early Bird", "Post 5 drawings before 9am", "🐦", CriteriaEarlyPosts, 5},
	{"morning_person", "Morning Person", "Post 10 drawings before noon", "🌅", CriteriaMorningPosts, 10},
	{"night_owl", "Night Owl", "Post 5 drawings after 8pm", "🦉", CriteriaNightPosts, 5},
	{"weekend_warrior", "Weekend Warrior", "Post 8 drawings on weekends", "🎪", CriteriaWeekendPosts, 8},
	{"triple_play", "Triple Play", "Fill all three slots in one day", "🎯", CriteriaTripleDay, 1},
	{"rising_star", "Rising Star", "Reach level 5", "🚀", CriteriaLevel, 5},
	{"art_legend", "Art Legend", "Reach level 10", "👑", CriteriaLevel, 10},
}

// AchievementEvaluator is the slice post and like flows call after a
// counter-changing action.
type AchievementEvaluator interface {
	EvaluateAndUnlock(ctx context.Context, childID uint64) ([]string, error)
}

var _ IAchievementService = (*AchievementService)(nil)

type IAchievementService interface {
	AchievementEvaluator
	ListForChild(ctx context.Context, childID uint64) ([]types.AchievementView, error)
}

type AchievementService struct {
	StatsDAO       *dao.UserStatsDAO
	PostDAO        *dao.PostDAO
	AchievementDAO *dao.AchievementDAO
}

// EvaluateAndUnlock recomputes every badge and records the newly earned ones.
// Returns the ids unlocked in this pass.
func (s *AchievementService) EvaluateAndUnlock(ctx context.Context, childID uint64) ([]string, error) {
	progress, err := s.progressMap(ctx, childID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockedSet(ctx, childID)
	if err != nil {
		return nil, err
	}

	var fresh []string
	for _, a := range Catalog {
		if unlocked[a.ID] || progress[a.Criteria] < a.Target {
			continue
		}
		if err := s.AchievementDAO.Unlock(ctx, childID, a.ID); err != nil {
			return fresh, err
		}
		fresh = append(fresh, a.ID)
	}
	return fresh, nil
}

// ListForChild returns the whole catalog with per-badge progress. The ledger
// supplies unlock timestamps; a badge also shows earned when its threshold is
// currently met but the ledger write has not happened yet.
func (s *AchievementService) ListForChild(ctx context.Context, childID uint64) ([]types.AchievementView, error) {
	progress, err := s.progressMap(ctx, childID)
	if err != nil {
		return nil, err
	}
	rows, err := s.AchievementDAO.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	unlockedAt := make(map[string]*models.UserAchievement, len(rows))
	for _, r := range rows {
		unlockedAt[r.AchievementID] = r
	}

	views := make([]types.AchievementView, 0, len(Catalog))
	for _, a := range Catalog {
		cur := progress[a.Criteria]
		shown := cur
		if shown > a.Target {
			shown = a.Target
		}
		v := types.AchievementView{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Criteria:    a.Criteria,
			Target:      a.Target,
			Progress:    shown,
			Earned:      cur >= a.Target,
		}
		if row, ok := unlockedAt[a.ID]; ok {
			v.Earned = true
			t := row.UnlockedAt
			v.UnlockedAt = &t
		}
		views = append(views, v)
	}
	return views, nil
}

// progressMap computes the current value behind every criteria tag.
func (s *AchievementService) progressMap(ctx context.Context, childID uint64) (map[string]int64, error) {
	stats, err := s.StatsDAO.GetByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &models.UserStats{ChildID: childID}
	}

	posts, err := s.PostDAO.FindAllByChild(ctx, childID, []string{models.PostStatusApproved})
	if err != nil {
		return nil, err
	}

	var morning, early, night, weekend int64
	slotsByDay := make(map[string]map[string]bool)
	for _, p := range posts {
		h := timeutil.Hour(p.CreatedAt)
		if h < 12 {
			morning++
		}
		if h < 9 {
			early++
		}
		if h >= 20 {
			night++
		}
		if timeutil.IsWeekend(p.CreatedAt) {
			weekend++
		}
		if slotsByDay[p.PostDay] == nil {
			slotsByDay[p.PostDay] = make(map[string]bool)
		}
		slotsByDay[p.PostDay][p.TimeSlot] = true
	}
	var tripleDays int64
	for _, slots := range slotsByDay {
		if slots[models.SlotDaily1] && slots[models.SlotDaily2] && slots[models.SlotFreeDraw] {
			tripleDays++
		}
	}

	return map[string]int64{
		CriteriaPosts:         stats.TotalPosts,
		CriteriaLikesGiven:    stats.LikesGiven,
		CriteriaLikesReceived: stats.LikesReceived,
		CriteriaViewsReceived: stats.ViewsReceived,
		CriteriaCurrentStreak: stats.CurrentStreak,
		CriteriaBestStreak:    stats.BestStreak,
		CriteriaMorningPosts:  morning,
		CriteriaEarlyPosts:    early,
		CriteriaNightPosts:    night,
		CriteriaWeekendPosts:  weekend,
		CriteriaTripleDay:     tripleDays,
		CriteriaLevel:         stats.Level(),
	}, nil
}

func (s *AchievementService) unlockedSet(ctx context.Context, childID uint64) (map[string]bool, error) {
	rows, err := s.AchievementDAO.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(rows))
	for _, r := range rows {
		set[r.AchievementID] = true
	}
	return set, nil
}
