package handler

import (
	"Doodly/config"
	"Doodly/dao"
	"Doodly/middleware"
	"Doodly/pkg/context"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"
	"Doodly/service"
	"Doodly/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Gallery is the community feed plus the public share-link endpoint.
type Gallery struct {
	Config      *config.Config
	PostService service.IPostService
}

func (h *Gallery) RegisterRouter(r gin.IRouter) {
	g := r.Group("/api/v1/gallery")
	g.Use(middleware.Auth([]byte(h.Config.Jwt.Secret), jwt.AudienceChild))
	g.GET("", context.Wrap(h.List))

	// share links go out to grandparents; no auth
	r.GET("/api/v1/share/:code", context.Wrap(h.Share))
}

func (h *Gallery) List(c *gin.Context) error {
	if _, err := context.GetChildID(c); err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	limit, offset := pagination(c)
	promptID, _ := strconv.ParseUint(c.Query("prompt_id"), 10, 64)
	f := dao.GalleryFilter{
		AgeGroup: c.Query("age_group"),
		TimeSlot: c.Query("time_slot"),
		Day:      c.Query("day"),
		PromptID: promptID,
		Sort:     c.DefaultQuery("sort", "newest"),
		Limit:    limit,
		Offset:   offset,
	}
	switch f.Sort {
	case "newest", "top", "trending":
	default:
		return response.NewError(http.StatusBadRequest, "sort must be newest, top or trending")
	}

	items, err := h.PostService.Gallery(c.Request.Context(), f)
	if err != nil {
		return err
	}
	response.Success(c, types.GalleryResponse{Items: items, Offset: offset, Limit: limit})
	return nil
}

func (h *Gallery) Share(c *gin.Context) error {
	item, err := h.PostService.ResolveShareCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}
