package services_test

import (
	"testing"
	"time"

	"project-hub/backend/internal/models"
	"project-hub/backend/internal/services"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	users services.UserService
	alice models.User
	bob   models.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)
	suite.users = services.NewUserService(4, nil)

	suite.alice = models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	suite.Require().NoError(suite.db.Create(&suite.alice).Error)
	suite.bob = models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	suite.Require().NoError(suite.db.Create(&suite.bob).Error)
}

func (suite *UserServiceTestSuite) TestUpdateUserFields() {
	first := "Alice"
	last := "Smith"
	updated, err := suite.users.UpdateUser(suite.db, suite.alice.ID, services.UserUpdate{
		FirstName: &first,
		LastName:  &last,
	})
	suite.Require().NoError(err)

	suite.Equal("Alice", updated.FirstName)
	suite.Equal("Smith", updated.LastName)
	suite.Equal("alice", updated.Username)
}

func (suite *UserServiceTestSuite) TestUpdateUserRejectsTakenEmail() {
	email := "bob@example.com"
	_, err := suite.users.UpdateUser(suite.db, suite.alice.ID, services.UserUpdate{Email: &email})
	suite.ErrorIs(err, services.ErrEmailExists)
}

func (suite *UserServiceTestSuite) TestUpdateUserRejectsTakenUsername() {
	username := "bob"
	_, err := suite.users.UpdateUser(suite.db, suite.alice.ID, services.UserUpdate{Username: &username})
	suite.ErrorIs(err, services.ErrUsernameExists)
}

func (suite *UserServiceTestSuite) TestUpdateUserRehashesPassword() {
	password := "new-password-1"
	updated, err := suite.users.UpdateUser(suite.db, suite.alice.ID, services.UserUpdate{Password: &password})
	suite.Require().NoError(err)

	suite.NotEqual("new-password-1", updated.Password)
	suite.True(services.VerifyPassword(updated.Password, "new-password-1"))
}

func (suite *UserServiceTestSuite) TestDeleteUserCascades() {
	project := models.Project{Name: "Apollo", OwnerID: suite.alice.ID}
	suite.Require().NoError(suite.db.Create(&project).Error)

	member := models.ProjectMember{ProjectID: project.ID, UserID: suite.bob.ID, Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(&member).Error)

	task := models.Task{
		Title:     "Fuel check",
		Status:    models.StatusToDo,
		Priority:  models.PriorityMedium,
		ProjectID: project.ID,
		DueDate:   time.Now().Add(time.Hour),
	}
	suite.Require().NoError(suite.db.Create(&task).Error)

	comment := models.Comment{TaskID: task.ID, UserID: suite.bob.ID, Content: "on it"}
	suite.Require().NoError(suite.db.Create(&comment).Error)

	suite.Require().NoError(suite.users.DeleteUser(suite.db, suite.alice.ID))

	var projects, tasks, comments, members int64
	suite.db.Model(&models.Project{}).Count(&projects)
	suite.db.Model(&models.Task{}).Count(&tasks)
	suite.db.Model(&models.Comment{}).Count(&comments)
	suite.db.Model(&models.ProjectMember{}).Count(&members)

	suite.Equal(int64(0), projects)
	suite.Equal(int64(0), tasks)
	suite.Equal(int64(0), comments)
	suite.Equal(int64(0), members)

	_, err := suite.users.GetUser(suite.db, suite.alice.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *UserServiceTestSuite) TestDeleteAssigneeKeepsTask() {
	project := models.Project{Name: "Apollo", OwnerID: suite.alice.ID}
	suite.Require().NoError(suite.db.Create(&project).Error)

	task := models.Task{
		Title:        "Fuel check",
		Status:       models.StatusToDo,
		Priority:     models.PriorityMedium,
		ProjectID:    project.ID,
		AssignedToID: &suite.bob.ID,
		DueDate:      time.Now().Add(time.Hour),
	}
	suite.Require().NoError(suite.db.Create(&task).Error)

	suite.Require().NoError(suite.users.DeleteUser(suite.db, suite.bob.ID))

	var kept models.Task
	suite.Require().NoError(suite.db.First(&kept, task.ID).Error)
	suite.Nil(kept.AssignedToID)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
