package handlers

import (
	"errors"
	"net/http"
	"time"

	"project-hub/backend/internal/models"
	"project-hub/backend/internal/services"
	"project-hub/backend/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
	jobs        *worker.JobQueue
}

type TaskCreateRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	AssignedTo  *uint     `json:"assigned_to"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

// NewTaskHandler wires the task endpoints. jobs may be nil; reminders are
// then simply not scheduled.
func NewTaskHandler(db *gorm.DB, taskService services.TaskService, jobs *worker.JobQueue) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService, jobs: jobs}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	tasks, err := h.taskService.GetProjectTasks(h.db, projectID)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, toTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTask creates a task under the project named in the path; a project
// id in the body is ignored.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	status := models.TaskStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		respondValidation(c, map[string]string{"status": "Invalid status. Allowed values are: To Do, In Progress, Done"})
		return
	}
	priority := models.TaskPriority(req.Priority)
	if req.Priority != "" && !priority.Valid() {
		respondValidation(c, map[string]string{"priority": "Invalid priority. Allowed values are: Low, Medium, High"})
		return
	}

	var project models.Project
	if err := h.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Project")
			return
		}
		handleTaskError(c, err)
		return
	}

	if req.AssignedTo != nil {
		var assignee models.User
		if err := h.db.First(&assignee, *req.AssignedTo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondValidation(c, map[string]string{"assigned_to": "User does not exist."})
				return
			}
			handleTaskError(c, err)
			return
		}
	}

	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		ProjectID:    projectID,
		AssignedToID: req.AssignedTo,
		DueDate:      req.DueDate,
	}

	task, err := h.taskService.CreateTask(h.db, task)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	h.scheduleReminder(task)

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := paramID(c, "task_id", "Task")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(h.db, id)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// UpdateTask serves both PUT and PATCH; task updates are always partial.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := paramID(c, "task_id", "Task")
	if !ok {
		return
	}

	var update services.TaskWrite
	if err := c.ShouldBindJSON(&update); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	if update.Status != nil && !update.Status.Valid() {
		respondValidation(c, map[string]string{"status": "Invalid status. Allowed values are: To Do, In Progress, Done"})
		return
	}
	if update.Priority != nil && !update.Priority.Valid() {
		respondValidation(c, map[string]string{"priority": "Invalid priority. Allowed values are: Low, Medium, High"})
		return
	}
	if update.Title != nil && *update.Title == "" {
		respondValidation(c, map[string]string{"title": "This field may not be blank."})
		return
	}

	if update.AssignedToID != nil {
		var assignee models.User
		if err := h.db.First(&assignee, *update.AssignedToID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondValidation(c, map[string]string{"assigned_to": "User does not exist."})
				return
			}
			handleTaskError(c, err)
			return
		}
	}

	task, err := h.taskService.UpdateTask(h.db, id, update)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := paramID(c, "task_id", "Task")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(h.db, id); err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *TaskHandler) scheduleReminder(task *models.Task) {
	if h.jobs == nil || !task.DueDate.After(time.Now()) {
		return
	}

	payload := map[string]interface{}{
		"task_id": task.ID,
		"title":   task.Title,
	}
	if err := h.jobs.EnqueueAt("reminders", worker.JobTypeDueReminder, payload, task.DueDate); err != nil {
		// Reminders are best effort; the task itself is already stored.
		return
	}
}

func handleTaskError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "Task")
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process task request"})
}
