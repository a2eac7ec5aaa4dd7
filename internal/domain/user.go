package domain

import "time"

// User 账号。公开 API 的删除只做停用（is_active=false），行本身保留给历史 issue 引用。
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null" validate:"required,min=2,max=100"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	Password  string    `gorm:"size:100" json:"-" validate:"-"` // bcrypt hash, write-only
	AvatarURL *string   `gorm:"size:500" validate:"omitempty,max=500"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AssignedIssues []Issue   `gorm:"foreignKey:AssignedToID" validate:"-"`
	ReportedIssues []Issue   `gorm:"foreignKey:ReporterID" validate:"-"`
	Comments       []Comment `validate:"-"`
}

func (User) TableName() string { return "users" }
