package handler

import (
	"Doodly/config"
	"Doodly/middleware"
	"Doodly/models"
	"Doodly/pkg/context"
	"Doodly/pkg/response"
	"Doodly/pkg/timeutil"
	"Doodly/service"
	"Doodly/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin is the operational surface: prompt regeneration and the moderation
// review queue. Gated by the static admin secret, not user tokens.
type Admin struct {
	Config        *config.Config
	PromptService service.IPromptService
	PostService   service.IPostService
}

func (h *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/api/v1/admin")
	g.Use(middleware.AdminAuth(h.Config.Admin.Secret))
	g.POST("/prompts/generate", context.Wrap(h.GeneratePrompts))
	g.GET("/posts", context.Wrap(h.ListPosts))
	g.POST("/posts/:id/review", context.Wrap(h.ReviewPost))
}

func (h *Admin) GeneratePrompts(c *gin.Context) error {
	var req types.GeneratePromptsRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		return response.NewError(http.StatusBadRequest, "invalid request body")
	}

	generated, fallback, err := h.PromptService.GenerateMatrix(c.Request.Context(), req.Day)
	if err != nil {
		return err
	}
	day := req.Day
	if day == "" {
		day = timeutil.Today()
	}
	response.Success(c, types.GeneratePromptsResponse{
		Day:       day,
		Generated: generated,
		Fallback:  fallback,
	})
	return nil
}

func (h *Admin) ListPosts(c *gin.Context) error {
	status := c.DefaultQuery("status", models.PostStatusPending)
	limit, offset := pagination(c)

	posts, err := h.PostService.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		return err
	}
	views := make([]types.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, service.PostToView(p))
	}
	response.Success(c, types.PostListResponse{Posts: views})
	return nil
}

func (h *Admin) ReviewPost(c *gin.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req types.ReviewPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "action must be approve or reject")
	}

	if err := h.PostService.Review(c.Request.Context(), postID, req.Action == "approve"); err != nil {
		return err
	}
	response.Success(c, gin.H{"post_id": postID, "status": req.Action})
	return nil
}
