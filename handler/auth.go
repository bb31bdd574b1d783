package handler

import (
	"Doodly/pkg/context"
	"Doodly/pkg/response"
	"Doodly/service"
	"Doodly/types"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	AuthService service.IAuthService
}

func (h *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/api/v1/auth")
	g.POST("/parent/code", context.Wrap(h.RequestParentCode))
	g.POST("/parent/verify", context.Wrap(h.VerifyParentCode))
	g.POST("/child/login", context.Wrap(h.ChildLogin))
	g.POST("/refresh", context.Wrap(h.Refresh))
}

func (h *Auth) RequestParentCode(c *gin.Context) error {
	var req types.ParentCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "a valid email is required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.AuthService.RequestParentCode(c.Request.Context(), email); err != nil {
		return err
	}
	response.Success(c, gin.H{"sent": true})
	return nil
}

func (h *Auth) VerifyParentCode(c *gin.Context) error {
	var req types.ParentVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "email and 6-digit code are required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	parent, access, refresh, err := h.AuthService.VerifyParentCode(c.Request.Context(), email, req.Code)
	if err != nil {
		return err
	}
	response.Success(c, types.ParentAuthResponse{
		ParentID: parent.ID,
		Email:    parent.Email,
		Tokens:   types.TokenPair{AccessToken: access, RefreshToken: refresh},
	})
	return nil
}

func (h *Auth) ChildLogin(c *gin.Context) error {
	var req types.ChildLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "username and pin are required")
	}

	child, access, refresh, err := h.AuthService.ChildLogin(c.Request.Context(), req.Username, req.Pin)
	if err != nil {
		return err
	}
	response.Success(c, types.ChildAuthResponse{
		ChildID:  child.ID,
		Username: child.Username,
		Name:     child.Name,
		AgeGroup: child.AgeGroup,
		Tokens:   types.TokenPair{AccessToken: access, RefreshToken: refresh},
	})
	return nil
}

func (h *Auth) Refresh(c *gin.Context) error {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "refresh_token is required")
	}

	access, refresh, err := h.AuthService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	response.Success(c, types.RefreshResponse{
		Tokens: types.TokenPair{AccessToken: access, RefreshToken: refresh},
	})
	return nil
}
