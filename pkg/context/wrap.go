package context

import (
	"Doodly/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxChildID  = "child_id"
	CtxParentID = "parent_id"
	CtxAudience = "audience"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// handler already wrote a response
			if c.Writer.Written() {
				return
			}
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  err.Error(),
			})
		}
	}
}

// GetChildID returns the authenticated child id. Only set by the child-audience
// auth middleware.
func GetChildID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxChildID)
	if !ok {
		return 0, errors.New("child_id not in context")
	}

	id, ok := v.(uint64)
	if !ok {
		return 0, errors.New("child_id has wrong type")
	}

	return id, nil
}

// GetParentID returns the authenticated parent id. Only set by the
// parent-audience auth middleware.
func GetParentID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxParentID)
	if !ok {
		return 0, errors.New("parent_id not in context")
	}

	id, ok := v.(uint64)
	if !ok {
		return 0, errors.New("parent_id has wrong type")
	}

	return id, nil
}
