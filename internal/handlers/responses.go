package handlers

import (
	"time"

	"project-hub/backend/internal/models"
)

// Read-response shapes. Each entity has one fixed read shape and one write
// payload; handlers pick between them with plain code, never reflection.

type UserPublic struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

func toUserPublic(u *models.User) UserPublic {
	return UserPublic{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.DateJoined,
	}
}

type ProjectResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Owner       UserPublic `json:"owner"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       toUserPublic(&p.Owner),
		CreatedAt:   p.CreatedAt,
	}
}

type MemberResponse struct {
	ID      uint              `json:"id"`
	Project uint              `json:"project"`
	User    UserPublic        `json:"user"`
	Role    models.MemberRole `json:"role"`
}

func toMemberResponse(m *models.ProjectMember) MemberResponse {
	return MemberResponse{
		ID:      m.ID,
		Project: m.ProjectID,
		User:    toUserPublic(&m.User),
		Role:    m.Role,
	}
}

type TaskResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	AssignedTo  *UserPublic         `json:"assigned_to"`
	Project     ProjectResponse     `json:"project"`
	CreatedAt   time.Time           `json:"created_at"`
	DueDate     time.Time           `json:"due_date"`
}

func toTaskResponse(t *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Project:     toProjectResponse(&t.Project),
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
	}
	if t.AssignedTo != nil {
		assignee := toUserPublic(t.AssignedTo)
		resp.AssignedTo = &assignee
	}
	return resp
}

type CommentResponse struct {
	ID        uint       `json:"id"`
	Content   string     `json:"content"`
	User      UserPublic `json:"user"`
	Task      uint       `json:"task"`
	CreatedAt time.Time  `json:"created_at"`
}

func toCommentResponse(cm *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		Content:   cm.Content,
		User:      toUserPublic(&cm.User),
		Task:      cm.TaskID,
		CreatedAt: cm.CreatedAt,
	}
}
