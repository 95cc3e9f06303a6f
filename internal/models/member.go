package models

type MemberRole string

const (
	RoleAdmin  MemberRole = "Admin"
	RoleMember MemberRole = "Member"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

type ProjectMember struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID uint       `json:"project_id" gorm:"not null"`
	UserID    uint       `json:"user_id" gorm:"not null"`
	Role      MemberRole `json:"role" gorm:"not null;default:'Member'"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
