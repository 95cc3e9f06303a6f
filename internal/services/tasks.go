package services

import (
	"time"

	"project-hub/backend/internal/models"

	"gorm.io/gorm"
)

// TaskWrite is the write payload for tasks. Status and priority fall back
// to their defaults when omitted on create; nil fields are left untouched
// on update.
type TaskWrite struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Status       *models.TaskStatus   `json:"status"`
	Priority     *models.TaskPriority `json:"priority"`
	AssignedToID *uint                `json:"assigned_to"`
	DueDate      *time.Time           `json:"due_date"`
}

type TaskService interface {
	GetProjectTasks(db *gorm.DB, projectID uint) ([]models.Task, error)
	CreateTask(db *gorm.DB, task *models.Task) (*models.Task, error)
	GetTask(db *gorm.DB, id uint) (*models.Task, error)
	UpdateTask(db *gorm.DB, id uint, update TaskWrite) (*models.Task, error)
	DeleteTask(db *gorm.DB, id uint) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func taskPreload(db *gorm.DB) *gorm.DB {
	return db.Preload("AssignedTo").Preload("Project").Preload("Project.Owner")
}

func (s *TaskServiceImpl) GetProjectTasks(db *gorm.DB, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := taskPreload(db).Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusToDo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if err := db.Create(task).Error; err != nil {
		return nil, err
	}
	if err := taskPreload(db).First(task, task.ID).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) GetTask(db *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	if err := taskPreload(db).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uint, update TaskWrite) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.AssignedToID != nil {
		task.AssignedToID = update.AssignedToID
	}
	if update.DueDate != nil {
		task.DueDate = *update.DueDate
	}

	if err := db.Save(&task).Error; err != nil {
		return nil, err
	}
	if err := taskPreload(db).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask drops the task's comments with it.
func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uint) error {
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}
