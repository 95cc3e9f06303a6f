package handlers

import (
	"net/http"

	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LogoutHandler struct {
	db          *gorm.DB
	authService services.AuthService
}

type LogoutRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func NewLogoutHandler(db *gorm.DB, authService services.AuthService) *LogoutHandler {
	return &LogoutHandler{db: db, authService: authService}
}

// Logout revokes a refresh token. Revoking an unknown token is still a
// successful logout.
func (h *LogoutHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	_ = h.authService.RevokeToken(h.db, req.Refresh)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
