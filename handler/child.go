package handler

import (
	"Doodly/config"
	"Doodly/middleware"
	"Doodly/models"
	"Doodly/pkg/context"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"
	"Doodly/service"
	"Doodly/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Child covers the parent-facing profile management surface.
type Child struct {
	Config       *config.Config
	ChildService service.IChildService
}

func (h *Child) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), jwt.AudienceParent)

	g := r.Group("/api/v1/children")
	g.Use(authorize)
	g.POST("", context.Wrap(h.Create))
	g.GET("", context.Wrap(h.List))
	g.GET("/:id", context.Wrap(h.Get))
	g.PATCH("/:id", context.Wrap(h.Update))
	g.DELETE("/:id", context.Wrap(h.Delete))
	g.PUT("/:id/consent", context.Wrap(h.SetConsent))

	p := r.Group("/api/v1/parent")
	p.Use(authorize)
	p.DELETE("/account", context.Wrap(h.DeleteAccount))
}

func (h *Child) Create(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	var req types.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid child profile")
	}

	child, err := h.ChildService.CreateChild(c.Request.Context(),
		parentID, req.Username, req.Name, req.AgeGroup, req.Pin, req.AvatarURL)
	if err != nil {
		return err
	}
	response.Success(c, toProfile(child))
	return nil
}

func (h *Child) List(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	children, err := h.ChildService.ListChildren(c.Request.Context(), parentID)
	if err != nil {
		return err
	}
	profiles := make([]types.ChildProfile, 0, len(children))
	for _, child := range children {
		profiles = append(profiles, toProfile(child))
	}
	response.Success(c, profiles)
	return nil
}

func (h *Child) Get(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	childID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	child, err := h.ChildService.GetOwnedChild(c.Request.Context(), parentID, childID)
	if err != nil {
		return err
	}
	response.Success(c, toProfile(child))
	return nil
}

func (h *Child) Update(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	childID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req types.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid update")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.AgeGroup != nil {
		fields["age_group"] = *req.AgeGroup
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}

	if err := h.ChildService.UpdateChild(c.Request.Context(), parentID, childID, fields, req.Pin); err != nil {
		return err
	}
	response.Success(c, gin.H{"updated": true})
	return nil
}

func (h *Child) SetConsent(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	childID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req types.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Consent == nil {
		return response.NewError(http.StatusBadRequest, "consent must be true or false")
	}

	if err := h.ChildService.SetConsent(c.Request.Context(), parentID, childID, *req.Consent); err != nil {
		return err
	}
	response.Success(c, gin.H{"consent": *req.Consent})
	return nil
}

func (h *Child) Delete(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}
	childID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.ChildService.DeleteChild(c.Request.Context(), parentID, childID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func (h *Child) DeleteAccount(c *gin.Context) error {
	parentID, err := context.GetParentID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "not signed in")
	}

	if err := h.ChildService.DeleteParentAccount(c.Request.Context(), parentID); err != nil {
		return err
	}
	response.Success(c, gin.H{"deleted": true})
	return nil
}

func toProfile(child *models.Child) types.ChildProfile {
	return types.ChildProfile{
		ID:              child.ID,
		Username:        child.Username,
		Name:            child.Name,
		AgeGroup:        child.AgeGroup,
		AvatarURL:       child.AvatarURL,
		ParentalConsent: child.ParentalConsent,
		CreatedAt:       child.CreatedAt,
	}
}

// pathID parses the :id path segment.
func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
