package domain

import "time"

type Project struct {
	ID          uint          `gorm:"primaryKey"`
	Name        string        `gorm:"size:200;not null;index" validate:"required,min=2,max=200"`
	Description *string       `gorm:"type:text" validate:"omitempty,max=5000"`
	Status      ProjectStatus `gorm:"size:20;not null;default:active;index" validate:"required,enum"`
	StartDate   *Date
	EndDate     *Date
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// 只读列，由 repo 通过子查询填充
	IssuesCount int64 `gorm:"->;-:migration" validate:"-"`

	Issues []Issue `validate:"-"`
}

func (Project) TableName() string { return "projects" }
