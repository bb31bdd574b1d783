package handler

import (
	"Doodly/config"
	"Doodly/middleware"
	"Doodly/pkg/context"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"
	"Doodly/service"
	"Doodly/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats serves the gamification read side: counters, achievements and the
// weekly leaderboard.
type Stats struct {
	Config             *config.Config
	StatsService       service.IStatsService
	AchievementService service.IAchievementService
	ChildService       service.IChildService
}

func (h *Stats) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)

	// parents check on their kids, kids check on themselves
	g := r.Group("/api/v1/children/:id")
	g.Use(middleware.AuthAny(secret))
	g.GET("/stats", context.Wrap(h.GetStats))
	g.GET("/achievements", context.Wrap(h.GetAchievements))

	lb := r.Group("/api/v1/leaderboard")
	lb.Use(middleware.Auth(secret, jwt.AudienceChild))
	lb.GET("", context.Wrap(h.Leaderboard))
}

func (h *Stats) GetStats(c *gin.Context) error {
	childID, err := h.authorizeChildRead(c)
	if err != nil {
		return err
	}

	stats, err := h.StatsService.GetStats(c.Request.Context(), childID)
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}

func (h *Stats) GetAchievements(c *gin.Context) error {
	childID, err := h.authorizeChildRead(c)
	if err != nil {
		return err
	}

	views, err := h.AchievementService.ListForChild(c.Request.Context(), childID)
	if err != nil {
		return err
	}
	response.Success(c, types.AchievementListResponse{Achievements: views})
	return nil
}

func (h *Stats) Leaderboard(c *gin.Context) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	ageGroup := c.Query("age_group")
	if ageGroup == "" {
		child, err := h.ChildService.GetByID(c.Request.Context(), childID)
		if err != nil {
			return err
		}
		ageGroup = child.AgeGroup
	}

	board, err := h.StatsService.Leaderboard(c.Request.Context(), ageGroup, c.Query("week"))
	if err != nil {
		return err
	}
	response.Success(c, board)
	return nil
}

// authorizeChildRead resolves the :id child the caller may read: the child
// themselves or the parent who owns the profile.
func (h *Stats) authorizeChildRead(c *gin.Context) (uint64, error) {
	childID, err := pathID(c, "id")
	if err != nil {
		return 0, err
	}

	switch c.GetString(context.CtxAudience) {
	case jwt.AudienceChild:
		viewerID, err := context.GetChildID(c)
		if err != nil {
			return 0, response.NewError(http.StatusUnauthorized, "not signed in")
		}
		if viewerID != childID {
			return 0, response.NewError(http.StatusForbidden, "you can only view your own stats")
		}
	case jwt.AudienceParent:
		parentID, err := context.GetParentID(c)
		if err != nil {
			return 0, response.NewError(http.StatusUnauthorized, "not signed in")
		}
		if _, err := h.ChildService.GetOwnedChild(c.Request.Context(), parentID, childID); err != nil {
			return 0, err
		}
	default:
		return 0, response.NewError(http.StatusUnauthorized, "not signed in")
	}
	return childID, nil
}
