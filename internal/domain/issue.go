package domain

import "time"

type Issue struct {
	ID           uint        `gorm:"primaryKey"`
	ProjectID    uint        `gorm:"not null;index"`
	Title        string      `gorm:"size:500;not null" validate:"required,min=3,max=500"`
	Description  *string     `gorm:"type:text" validate:"omitempty,max=5000"`
	Status       IssueStatus `gorm:"size:20;not null;default:active;index" validate:"required,enum"`
	Priority     Priority    `gorm:"size:20;not null;default:medium;index" validate:"required,enum"`
	AssignedToID *uint       `gorm:"index"`
	ReporterID   uint        `gorm:"not null;index"`
	DueDate      *Date
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Project    *Project  `validate:"-"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID" validate:"-"`
	Reporter   *User     `gorm:"foreignKey:ReporterID" validate:"-"`
	Comments   []Comment `validate:"-"`
}

func (Issue) TableName() string { return "issues" }
