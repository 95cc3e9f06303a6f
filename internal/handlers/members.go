package handlers

import (
	"errors"
	"net/http"

	"project-hub/backend/internal/models"
	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MemberHandler struct {
	db            *gorm.DB
	memberService services.MemberService
}

type MemberCreateRequest struct {
	User uint   `json:"user" binding:"required"`
	Role string `json:"role"`
}

type MemberUpdateRequest struct {
	User *uint   `json:"user"`
	Role *string `json:"role"`
}

func NewMemberHandler(db *gorm.DB, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{db: db, memberService: memberService}
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	projectID, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	members, err := h.memberService.GetProjectMembers(h.db, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	resp := make([]MemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, toMemberResponse(&members[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	projectID, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	var req MemberCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	role := models.MemberRole(req.Role)
	if req.Role != "" && !role.Valid() {
		respondValidation(c, map[string]string{
			"role": "Invalid role. Allowed values are: Admin, Member",
		})
		return
	}

	var project models.Project
	if err := h.db.First(&project, projectID).Error; err != nil {
		handleMemberError(c, err, "Project")
		return
	}
	var user models.User
	if err := h.db.First(&user, req.User).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondValidation(c, map[string]string{"user": "User does not exist."})
			return
		}
		handleMemberError(c, err, "User")
		return
	}

	member, err := h.memberService.CreateMember(h.db, projectID, req.User, role)
	if err != nil {
		handleMemberError(c, err, "Member")
		return
	}

	c.JSON(http.StatusCreated, toMemberResponse(member))
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := paramID(c, "id", "Member")
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(h.db, id)
	if err != nil {
		handleMemberError(c, err, "Member")
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// UpdateMember serves both PUT and PATCH; membership updates are always
// partial.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := paramID(c, "id", "Member")
	if !ok {
		return
	}

	var req MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	var role *models.MemberRole
	if req.Role != nil {
		r := models.MemberRole(*req.Role)
		if !r.Valid() {
			respondValidation(c, map[string]string{
				"role": "Invalid role. Allowed values are: Admin, Member",
			})
			return
		}
		role = &r
	}

	if req.User != nil {
		var user models.User
		if err := h.db.First(&user, *req.User).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondValidation(c, map[string]string{"user": "User does not exist."})
				return
			}
			handleMemberError(c, err, "User")
			return
		}
	}

	member, err := h.memberService.UpdateMember(h.db, id, req.User, role)
	if err != nil {
		handleMemberError(c, err, "Member")
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := paramID(c, "id", "Member")
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(h.db, id); err != nil {
		handleMemberError(c, err, "Member")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func handleMemberError(c *gin.Context, err error, entity string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, entity)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process member request"})
}
