package handlers

import (
	"net/http"

	"ihome-rentals/internal/middleware"
	"ihome-rentals/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile serves GET /user
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, profile)
}
