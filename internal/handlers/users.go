package handlers

import (
	"errors"
	"net/http"

	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(h.db, id)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserPublic(user))
}

// UpdateUser handles PUT: a full replacement, so the identity fields must
// all be present.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	var update services.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	fields := map[string]string{}
	if update.Username == nil {
		fields["username"] = "This field is required."
	}
	if update.Email == nil {
		fields["email"] = "This field is required."
	}
	if update.Password == nil {
		fields["password"] = "This field is required."
	}
	if len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	user, err := h.userService.UpdateUser(h.db, id, update)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserPublic(user))
}

func (h *UserHandler) PatchUser(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	var update services.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	user, err := h.userService.UpdateUser(h.db, id, update)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserPublic(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(h.db, id); err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, "User")
	case errors.Is(err, services.ErrEmailExists):
		respondValidation(c, map[string]string{"email": "A user with that email already exists."})
	case errors.Is(err, services.ErrUsernameExists):
		respondValidation(c, map[string]string{"username": "A user with that username already exists."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process user request"})
	}
}
