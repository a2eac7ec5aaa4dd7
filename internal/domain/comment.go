package domain

import "time"

type Comment struct {
	ID         uint      `gorm:"primaryKey"`
	IssueID    uint      `gorm:"not null;index;index:idx_comments_issue_created,priority:1"`
	UserID     uint      `gorm:"not null;index"`
	Content    string    `gorm:"type:text;not null" validate:"required,notblank,min=1,max=5000"`
	IsInternal bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_comments_issue_created,priority:2"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Issue *Issue `validate:"-"`
	User  *User  `validate:"-"`
}

func (Comment) TableName() string { return "comments" }
