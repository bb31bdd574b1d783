package service

import (
	"Doodly/dao"
	"Doodly/dao/cache"
	"Doodly/models"
	"Doodly/pkg/response"
	"Doodly/pkg/timeutil"
	"Doodly/types"
	"context"
	"net/http"
	"time"
)

const leaderboardSize = 20

var _ IStatsService = (*StatsService)(nil)

type IStatsService interface {
	GetStats(ctx context.Context, childID uint64) (*types.StatsResponse, error)
	Leaderboard(ctx context.Context, ageGroup, week string) (*types.LeaderboardResponse, error)
}

type StatsService struct {
	StatsDAO     *dao.UserStatsDAO
	ChildDAO     *dao.ChildDAO
	Leaderboards *cache.Leaderboard
}

func (s *StatsService) GetStats(ctx context.Context, childID uint64) (*types.StatsResponse, error) {
	stats, err := s.StatsDAO.GetByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		// a brand-new child simply has zeros everywhere
		stats = &models.UserStats{ChildID: childID}
	}
	return &types.StatsResponse{
		ChildID:       childID,
		TotalPosts:    stats.TotalPosts,
		LikesGiven:    stats.LikesGiven,
		LikesReceived: stats.LikesReceived,
		ViewsReceived: stats.ViewsReceived,
		CurrentStreak: stats.CurrentStreak,
		BestStreak:    stats.BestStreak,
		TotalPoints:   stats.TotalPoints,
		Level:         stats.Level(),
	}, nil
}

// Leaderboard returns this week's top children for an age group, hydrated
// with usernames. Week defaults to the current ISO week (ET).
func (s *StatsService) Leaderboard(ctx context.Context, ageGroup, week string) (*types.LeaderboardResponse, error) {
	if !models.ValidAgeGroup(ageGroup) {
		return nil, response.NewError(http.StatusBadRequest, "unknown age group")
	}
	if week == "" {
		week = timeutil.ISOWeek(time.Now())
	}

	entries, err := s.Leaderboards.Top(ctx, week, ageGroup, leaderboardSize)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ChildID)
	}
	children, err := s.ChildDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]string, len(children))
	for _, c := range children {
		names[c.ID] = c.Username
	}

	rows := make([]types.LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		username, ok := names[e.ChildID]
		if !ok {
			continue // child deleted since scoring
		}
		rows = append(rows, types.LeaderboardRow{
			Rank:     i + 1,
			ChildID:  e.ChildID,
			Username: username,
			Points:   e.Points,
		})
	}
	return &types.LeaderboardResponse{Week: week, AgeGroup: ageGroup, Rows: rows}, nil
}
