package services

import (
	"project-hub/backend/internal/models"

	"gorm.io/gorm"
)

// ProjectWrite is the write payload for projects. The owner is never part
// of it: ownership is fixed at creation from the authenticated caller.
type ProjectWrite struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ProjectService interface {
	CreateProject(db *gorm.DB, name, description string, ownerID uint) (*models.Project, error)
	GetProjects(db *gorm.DB) ([]models.Project, error)
	GetProject(db *gorm.DB, id uint) (*models.Project, error)
	UpdateProject(db *gorm.DB, id uint, update ProjectWrite) (*models.Project, error)
	DeleteProject(db *gorm.DB, id uint) error
}

type ProjectServiceImpl struct {
	taskCache TaskCacheInvalidator
}

// NewProjectService builds a project service. taskCache may be nil when no
// cache sits in front of task reads.
func NewProjectService(taskCache TaskCacheInvalidator) *ProjectServiceImpl {
	return &ProjectServiceImpl{taskCache: taskCache}
}

func (s *ProjectServiceImpl) CreateProject(db *gorm.DB, name, description string, ownerID uint) (*models.Project, error) {
	project := models.Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Owner").First(&project, project.ID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectServiceImpl) GetProjects(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	if err := db.Preload("Owner").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectServiceImpl) GetProject(db *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	if err := db.Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectServiceImpl) UpdateProject(db *gorm.DB, id uint, update ProjectWrite) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		return nil, err
	}

	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}

	if err := db.Save(&project).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject cascades through the project's tasks (and their comments)
// and memberships before removing the project row itself, inside one
// transaction. Cached entries for the removed tasks are evicted afterwards.
func (s *ProjectServiceImpl) DeleteProject(db *gorm.DB, id uint) error {
	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		return err
	}

	var taskIDs []uint
	if err := db.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		projectTasks := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("task_id IN (?)", projectTasks).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return err
	}

	if s.taskCache != nil {
		s.taskCache.InvalidateProject(id, taskIDs)
	}
	return nil
}
