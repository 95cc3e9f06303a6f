package services

import (
	"errors"

	"project-hub/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserUpdate carries the writable account fields. Nil means "leave as is"
// on a partial update; full updates require username, email and password.
type UserUpdate struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	FirstName *string `json:"first_name" binding:"omitempty,max=30"`
	LastName  *string `json:"last_name" binding:"omitempty,max=30"`
}

type UserService interface {
	GetUser(db *gorm.DB, id uint) (*models.User, error)
	GetUsers(db *gorm.DB) ([]models.User, error)
	UpdateUser(db *gorm.DB, id uint, update UserUpdate) (*models.User, error)
	DeleteUser(db *gorm.DB, id uint) error
}

type UserServiceImpl struct {
	bcryptCost int
	taskCache  TaskCacheInvalidator
}

// NewUserService builds a user service. taskCache may be nil when no cache
// sits in front of task reads.
func NewUserService(bcryptCost int, taskCache TaskCacheInvalidator) *UserServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserServiceImpl{bcryptCost: bcryptCost, taskCache: taskCache}
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) GetUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserServiceImpl) UpdateUser(db *gorm.DB, id uint, update UserUpdate) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		var existing models.User
		if err := db.Where("email = ? AND id <> ?", *update.Email, id).First(&existing).Error; err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *update.Email
	}

	if update.Username != nil && *update.Username != user.Username {
		var existing models.User
		if err := db.Where("username = ? AND id <> ?", *update.Username, id).First(&existing).Error; err == nil {
			return nil, ErrUsernameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *update.Username
	}

	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account and everything hanging off it: owned
// projects cascade down to tasks and comments, memberships and authored
// comments are deleted, and task assignments are cleared rather than
// deleting the tasks themselves. The task cache is flushed afterwards since
// the cascade touches tasks across projects.
func (s *UserServiceImpl) DeleteUser(db *gorm.DB, id uint) error {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		ownedProjects := tx.Model(&models.Project{}).Select("id").Where("owner_id = ?", id)
		ownedTasks := tx.Model(&models.Task{}).Select("id").Where("project_id IN (?)", ownedProjects)

		if err := tx.Where("task_id IN (?)", ownedTasks).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)", ownedProjects).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Where("assigned_to_id = ?", id).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR project_id IN (?)", id, ownedProjects).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Token{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return err
	}

	if s.taskCache != nil {
		s.taskCache.InvalidateAll()
	}
	return nil
}
