package handler

import (
	"Doodly/config"
	"Doodly/middleware"
	"Doodly/models"
	"Doodly/pkg/context"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"
	"Doodly/pkg/timeutil"
	"Doodly/service"
	"Doodly/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Prompt struct {
	Config        *config.Config
	PromptService service.IPromptService
	ChildService  service.IChildService
}

func (h *Prompt) RegisterRouter(r gin.IRouter) {
	g := r.Group("/api/v1/prompts")
	g.Use(middleware.Auth([]byte(h.Config.Jwt.Secret), jwt.AudienceChild))
	g.GET("/today", context.Wrap(h.Today))
}

// Today serves the signed-in child the two daily challenges for their age
// group.
func (h *Prompt) Today(c *gin.Context) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	child, err := h.ChildService.GetByID(c.Request.Context(), childID)
	if err != nil {
		return err
	}

	prompts, err := h.PromptService.GetToday(c.Request.Context(), child.AgeGroup)
	if err != nil {
		return err
	}
	response.Success(c, types.TodayPromptsResponse{
		Day:     timeutil.Today(),
		Prompts: toPromptViews(prompts),
	})
	return nil
}

func toPromptViews(prompts []*models.Prompt) []types.PromptView {
	views := make([]types.PromptView, 0, len(prompts))
	for _, p := range prompts {
		views = append(views, types.PromptView{
			ID:             p.ID,
			Day:            p.Day,
			AgeGroup:       p.AgeGroup,
			TimeSlot:       p.TimeSlot,
			Difficulty:     p.Difficulty,
			PromptText:     p.PromptText,
			CommunityTitle: p.CommunityTitle,
		})
	}
	return views
}
