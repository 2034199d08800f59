package models

import "time"

type Startup struct {
	StartupID   uint       `gorm:"primaryKey;autoIncrement;column:startup_id" json:"startup_id"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Founder     *string    `gorm:"column:founder" json:"founder,omitempty"`
	Industry    *string    `gorm:"column:industry" json:"industry,omitempty"`
	FoundedDate *time.Time `gorm:"column:founded_date;type:date" json:"founded_date,omitempty"`
	Status      *string    `gorm:"column:status" json:"status,omitempty"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
	UserID      *uint      `gorm:"column:user_id;index" json:"user_id,omitempty"`
}

func (Startup) TableName() string { return "startup" }
