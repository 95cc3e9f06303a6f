package handlers

import (
	"errors"
	"net/http"

	"project-hub/backend/internal/models"
	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db             *gorm.DB
	commentService services.CommentService
}

// CommentCreateRequest accepts a user field for compatibility but the
// author is always the authenticated caller.
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required"`
	User    uint   `json:"user"`
}

type CommentUpdateRequest struct {
	Content *string `json:"content"`
}

func NewCommentHandler(db *gorm.DB, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{db: db, commentService: commentService}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := paramID(c, "task_id", "Task")
	if !ok {
		return
	}

	comments, err := h.commentService.GetTaskComments(h.db, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	taskID, ok := paramID(c, "task_id", "Task")
	if !ok {
		return
	}

	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	var task models.Task
	if err := h.db.First(&task, taskID).Error; err != nil {
		handleCommentError(c, err, "Task")
		return
	}

	comment, err := h.commentService.CreateComment(h.db, taskID, callerID, req.Content)
	if err != nil {
		handleCommentError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := paramID(c, "id", "Comment")
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(h.db, id)
	if err != nil {
		handleCommentError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := paramID(c, "id", "Comment")
	if !ok {
		return
	}

	var req CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	if req.Content != nil && *req.Content == "" {
		respondValidation(c, map[string]string{"content": "This field may not be blank."})
		return
	}

	comment, err := h.commentService.UpdateComment(h.db, id, req.Content)
	if err != nil {
		handleCommentError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id", "Comment")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(h.db, id); err != nil {
		handleCommentError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func handleCommentError(c *gin.Context, err error, entity string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, entity)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process comment request"})
}
