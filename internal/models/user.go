package models

import (
	"time"
)

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"unique;not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`

	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined" gorm:"autoCreateTime"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	IsStaff    bool      `json:"is_staff" gorm:"default:false"`

	Projects    []Project       `json:"projects,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Memberships []ProjectMember `json:"memberships,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tasks       []Task          `json:"tasks,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Comments    []Comment       `json:"comments,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
