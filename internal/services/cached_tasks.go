package services

import (
	"fmt"
	"time"

	"project-hub/backend/internal/cache"
	"project-hub/backend/internal/models"

	"gorm.io/gorm"
)

// TaskCacheInvalidator evicts cached task state after cascade deletes whose
// writes bypass the task service.
type TaskCacheInvalidator interface {
	InvalidateProject(projectID uint, taskIDs []uint)
	InvalidateAll()
}

// CachedTaskService is a read-through wrapper around TaskService. Writes
// invalidate the task entry and the project listing it appears under; a
// broken cache never fails the request.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func taskKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

func projectTasksKey(projectID uint) string {
	return fmt.Sprintf("project_tasks:%d", projectID)
}

func (s *CachedTaskService) GetProjectTasks(db *gorm.DB, projectID uint) ([]models.Task, error) {
	var cached []models.Task
	if err := s.cache.Get(projectTasksKey(projectID), &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.GetProjectTasks(db, projectID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(projectTasksKey(projectID), tasks, 10*time.Minute)
	return tasks, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task *models.Task) (*models.Task, error) {
	created, err := s.taskService.CreateTask(db, task)
	if err != nil {
		return nil, err
	}

	s.cache.Set(taskKey(created.ID), created, 30*time.Minute)
	s.cache.Delete(projectTasksKey(created.ProjectID))

	return created, nil
}

func (s *CachedTaskService) GetTask(db *gorm.DB, id uint) (*models.Task, error) {
	var cached models.Task
	if err := s.cache.Get(taskKey(id), &cached); err == nil {
		return &cached, nil
	}

	task, err := s.taskService.GetTask(db, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(taskKey(id), task, 30*time.Minute)
	return task, nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uint, update TaskWrite) (*models.Task, error) {
	task, err := s.taskService.UpdateTask(db, id, update)
	if err != nil {
		return nil, err
	}

	s.cache.Set(taskKey(id), task, 30*time.Minute)
	s.cache.Delete(projectTasksKey(task.ProjectID))

	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uint) error {
	task, getErr := s.taskService.GetTask(db, id)

	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}

	s.cache.Delete(taskKey(id))
	if getErr == nil {
		s.cache.Delete(projectTasksKey(task.ProjectID))
	}

	return nil
}

// InvalidateProject evicts a project's listing together with the entries of
// the tasks under it. Callers collect the task ids before the rows go.
func (s *CachedTaskService) InvalidateProject(projectID uint, taskIDs []uint) {
	for _, id := range taskIDs {
		s.cache.Delete(taskKey(id))
	}
	s.cache.Delete(projectTasksKey(projectID))
}

// InvalidateAll drops every cached task entry and project listing. Account
// deletion uses it: the affected tasks span an unbounded set of projects.
func (s *CachedTaskService) InvalidateAll() {
	s.cache.DeletePattern("task:*")
	s.cache.DeletePattern("project_tasks:*")
}

func (s *CachedTaskService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}
