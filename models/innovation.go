package models

import "time"

type Innovation struct {
	InnovationID uint       `gorm:"primaryKey;autoIncrement;column:innovation_id" json:"innovation_id"`
	Title        string     `gorm:"column:title;not null" json:"title"`
	Description  *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Domain       *string    `gorm:"column:domain" json:"domain,omitempty"`
	Level        *string    `gorm:"column:level" json:"level,omitempty"`   // e.g. institute, state, national
	Status       *string    `gorm:"column:status" json:"status,omitempty"` // e.g. draft, submitted, approved
	SubmittedOn  *time.Time `gorm:"column:submitted_on;type:date" json:"submitted_on,omitempty"`
	CreatedAt    *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
	UserID       *uint      `gorm:"column:user_id;index" json:"user_id,omitempty"`
}

func (Innovation) TableName() string { return "innovation" }
