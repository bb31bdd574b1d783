package handler

import (
	"Doodly/config"
	"Doodly/middleware"
	"Doodly/pkg/context"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"
	"Doodly/service"
	"Doodly/types"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Post struct {
	Config      *config.Config
	PostService service.IPostService
	LikeService service.ILikeService
}

func (h *Post) RegisterRouter(r gin.IRouter) {
	childOnly := middleware.Auth([]byte(h.Config.Jwt.Secret), jwt.AudienceChild)

	g := r.Group("/api/v1/posts")
	g.Use(childOnly)
	g.POST("", context.Wrap(h.Create))
	g.GET("/:id", context.Wrap(h.Get))
	g.DELETE("/:id", context.Wrap(h.Delete))
	g.POST("/:id/view", context.Wrap(h.View))
	g.POST("/:id/like", context.Wrap(h.Like))
	g.DELETE("/:id/like", context.Wrap(h.Unlike))

	cg := r.Group("/api/v1/children/:id/posts")
	cg.Use(childOnly)
	cg.GET("", context.Wrap(h.ListByChild))
}

// Create accepts a multipart upload: the image file plus time_slot and an
// optional alt_text field.
func (h *Post) Create(c *gin.Context) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	header, err := c.FormFile("image")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "an image file is required")
	}
	timeSlot := c.PostForm("time_slot")
	altText := c.PostForm("alt_text")
	if len(altText) > 300 {
		return response.NewError(http.StatusBadRequest, "alt_text too long")
	}

	result, err := h.PostService.Create(c.Request.Context(), childID, timeSlot, altText, header)
	if err != nil {
		var conflict *service.SlotTakenError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusTooManyRequests, response.Response{
				Code: http.StatusTooManyRequests,
				Msg:  "you already posted in this slot today",
				Data: types.SlotConflict{TimeSlot: conflict.TimeSlot, PostDay: conflict.PostDay},
			})
			return nil
		}
		return err
	}
	response.Success(c, result)
	return nil
}

func (h *Post) Get(c *gin.Context) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.PostService.Get(c.Request.Context(), childID, postID)
	if err != nil {
		return err
	}
	response.Success(c, service.PostToView(post))
	return nil
}

func (h *Post) Delete(c *gin.Context) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.PostService.Delete(c.Request.Context(), childID, postID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (h *Post) ListByChild(c *gin.Context) error {
	viewerID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	childID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	posts, err := h.PostService.ListByChild(c.Request.Context(), viewerID, childID, limit, offset)
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

func (h *Post) View(c *gin.Context) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.PostService.RecordView(c.Request.Context(), childID, postID); err != nil {
		return err
	}
	response.Success(c, gin.H{"viewed": true})
	return nil
}

func (h *Post) Like(c *gin.Context) error {
	return h.setLike(c, true)
}

func (h *Post) Unlike(c *gin.Context) error {
	return h.setLike(c, false)
}

func (h *Post) setLike(c *gin.Context, want bool) error {
	childID, err := context.GetChildID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var result *types.LikeResponse
	if want {
		result, err = h.LikeService.Like(c.Request.Context(), childID, postID)
	} else {
		result, err = h.LikeService.Unlike(c.Request.Context(), childID, postID)
	}
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}

// pagination reads limit/offset query params with gallery-friendly defaults.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
