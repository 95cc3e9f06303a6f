package services_test

import (
	"fmt"
	"testing"
	"time"

	"project-hub/backend/internal/cache"
	"project-hub/backend/internal/models"
	"project-hub/backend/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CachedTaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	mr      *miniredis.Miniredis
	cached  *services.CachedTaskService
	project models.Project
}

func (suite *CachedTaskServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
	suite.mr = miniredis.RunT(suite.T())

	client := redis.NewClient(&redis.Options{Addr: suite.mr.Addr()})
	suite.cached = services.NewCachedTaskService(services.NewTaskService(), cache.NewRedisCache(client))

	owner := models.User{Username: "owner", Email: "owner@example.com", Password: "x"}
	suite.Require().NoError(suite.db.Create(&owner).Error)
	suite.project = models.Project{Name: "Apollo", OwnerID: owner.ID}
	suite.Require().NoError(suite.db.Create(&suite.project).Error)
}

func (suite *CachedTaskServiceTestSuite) newTask(title string) *models.Task {
	task, err := suite.cached.CreateTask(suite.db, &models.Task{
		Title:     title,
		ProjectID: suite.project.ID,
		DueDate:   time.Now().Add(24 * time.Hour),
	})
	suite.Require().NoError(err)
	return task
}

func (suite *CachedTaskServiceTestSuite) TestGetTaskFillsCache() {
	task := suite.newTask("Fuel check")
	suite.mr.FlushAll()

	fetched, err := suite.cached.GetTask(suite.db, task.ID)
	suite.Require().NoError(err)
	suite.Equal("Fuel check", fetched.Title)
	suite.True(suite.mr.Exists(fmt.Sprintf("task:%d", task.ID)))
}

func (suite *CachedTaskServiceTestSuite) TestProjectDeleteEvictsCachedTasks() {
	task := suite.newTask("Fuel check")

	listed, err := suite.cached.GetProjectTasks(suite.db, suite.project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(listed, 1)
	_, err = suite.cached.GetTask(suite.db, task.ID)
	suite.Require().NoError(err)

	projects := services.NewProjectService(suite.cached)
	suite.Require().NoError(projects.DeleteProject(suite.db, suite.project.ID))

	listed, err = suite.cached.GetProjectTasks(suite.db, suite.project.ID)
	suite.Require().NoError(err)
	suite.Empty(listed)

	_, err = suite.cached.GetTask(suite.db, task.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CachedTaskServiceTestSuite) TestUserDeleteDropsCachedAssignee() {
	assignee := models.User{Username: "crew", Email: "crew@example.com", Password: "x"}
	suite.Require().NoError(suite.db.Create(&assignee).Error)

	task := suite.newTask("Fuel check")
	_, err := suite.cached.UpdateTask(suite.db, task.ID, services.TaskWrite{AssignedToID: &assignee.ID})
	suite.Require().NoError(err)

	users := services.NewUserService(4, suite.cached)
	suite.Require().NoError(users.DeleteUser(suite.db, assignee.ID))

	fetched, err := suite.cached.GetTask(suite.db, task.ID)
	suite.Require().NoError(err)
	suite.Nil(fetched.AssignedToID)
}

func (suite *CachedTaskServiceTestSuite) TestUpdateInvalidatesProjectListing() {
	task := suite.newTask("Fuel check")

	listed, err := suite.cached.GetProjectTasks(suite.db, suite.project.ID)
	suite.Require().NoError(err)
	suite.Len(listed, 1)

	title := "Fuel recheck"
	_, err = suite.cached.UpdateTask(suite.db, task.ID, services.TaskWrite{Title: &title})
	suite.Require().NoError(err)

	listed, err = suite.cached.GetProjectTasks(suite.db, suite.project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(listed, 1)
	suite.Equal("Fuel recheck", listed[0].Title)
}

func (suite *CachedTaskServiceTestSuite) TestDeleteEvictsTask() {
	task := suite.newTask("Fuel check")

	_, err := suite.cached.GetTask(suite.db, task.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.cached.DeleteTask(suite.db, task.ID))

	_, err = suite.cached.GetTask(suite.db, task.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CachedTaskServiceTestSuite) TestSurvivesRedisOutage() {
	task := suite.newTask("Fuel check")
	suite.mr.Close()

	fetched, err := suite.cached.GetTask(suite.db, task.ID)
	suite.Require().NoError(err)
	suite.Equal(task.ID, fetched.ID)
}

func TestCachedTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CachedTaskServiceTestSuite))
}
