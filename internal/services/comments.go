package services

import (
	"project-hub/backend/internal/models"

	"gorm.io/gorm"
)

type CommentService interface {
	GetTaskComments(db *gorm.DB, taskID uint) ([]models.Comment, error)
	CreateComment(db *gorm.DB, taskID, userID uint, content string) (*models.Comment, error)
	GetComment(db *gorm.DB, id uint) (*models.Comment, error)
	UpdateComment(db *gorm.DB, id uint, content *string) (*models.Comment, error)
	DeleteComment(db *gorm.DB, id uint) error
}

type CommentServiceImpl struct{}

func NewCommentService() *CommentServiceImpl {
	return &CommentServiceImpl{}
}

func (s *CommentServiceImpl) GetTaskComments(db *gorm.DB, taskID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := db.Preload("User").Where("task_id = ?", taskID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentServiceImpl) CreateComment(db *gorm.DB, taskID, userID uint, content string) (*models.Comment, error) {
	comment := models.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentServiceImpl) GetComment(db *gorm.DB, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentServiceImpl) UpdateComment(db *gorm.DB, id uint, content *string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		return nil, err
	}

	if content != nil {
		comment.Content = *content
	}

	if err := db.Save(&comment).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentServiceImpl) DeleteComment(db *gorm.DB, id uint) error {
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		return err
	}
	return db.Delete(&comment).Error
}
