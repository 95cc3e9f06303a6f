package models

import (
	"time"
)

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status" gorm:"not null;default:'To Do'"`
	Priority     TaskPriority `json:"priority" gorm:"not null;default:'Medium'"`
	ProjectID    uint         `json:"project_id" gorm:"not null"`
	AssignedToID *uint        `json:"assigned_to_id"`
	DueDate      time.Time    `json:"due_date" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`

	Project    Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	AssignedTo *User     `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Comments   []Comment `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
