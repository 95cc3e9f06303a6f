package services

import (
	"project-hub/backend/internal/models"

	"gorm.io/gorm"
)

type MemberService interface {
	GetProjectMembers(db *gorm.DB, projectID uint) ([]models.ProjectMember, error)
	CreateMember(db *gorm.DB, projectID, userID uint, role models.MemberRole) (*models.ProjectMember, error)
	GetMember(db *gorm.DB, id uint) (*models.ProjectMember, error)
	UpdateMember(db *gorm.DB, id uint, userID *uint, role *models.MemberRole) (*models.ProjectMember, error)
	DeleteMember(db *gorm.DB, id uint) error
}

type MemberServiceImpl struct{}

func NewMemberService() *MemberServiceImpl {
	return &MemberServiceImpl{}
}

func (s *MemberServiceImpl) GetProjectMembers(db *gorm.DB, projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := db.Preload("User").Where("project_id = ?", projectID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreateMember adds a user to a project. An empty role falls back to
// "Member".
func (s *MemberServiceImpl) CreateMember(db *gorm.DB, projectID, userID uint, role models.MemberRole) (*models.ProjectMember, error) {
	if role == "" {
		role = models.RoleMember
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := db.Create(&member).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&member, member.ID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberServiceImpl) GetMember(db *gorm.DB, id uint) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := db.Preload("User").First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberServiceImpl) UpdateMember(db *gorm.DB, id uint, userID *uint, role *models.MemberRole) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := db.First(&member, id).Error; err != nil {
		return nil, err
	}

	if userID != nil {
		member.UserID = *userID
	}
	if role != nil {
		member.Role = *role
	}

	if err := db.Save(&member).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberServiceImpl) DeleteMember(db *gorm.DB, id uint) error {
	var member models.ProjectMember
	if err := db.First(&member, id).Error; err != nil {
		return err
	}
	return db.Delete(&member).Error
}
