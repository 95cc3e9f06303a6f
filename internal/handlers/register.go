package handlers

import (
	"errors"
	"net/http"

	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
}

func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService) *RegisterHandler {
	return &RegisterHandler{db: db, registerService: registerService}
}

func (h *RegisterHandler) Register(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	user, err := h.registerService.RegisterUser(h.db, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailExists):
			respondValidation(c, map[string]string{"email": "A user with that email already exists."})
		case errors.Is(err, services.ErrUsernameExists):
			respondValidation(c, map[string]string{"username": "A user with that username already exists."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, toUserPublic(user))
}
