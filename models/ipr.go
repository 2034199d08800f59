package models

import "time"

type IPR struct {
	IPRID            uint       `gorm:"primaryKey;autoIncrement;column:ipr_id" json:"ipr_id"`
	IPRType          string     `gorm:"column:ipr_type;not null" json:"ipr_type"`
	Title            string     `gorm:"column:title;not null" json:"title"`
	IPRNumber        *string    `gorm:"column:ipr_number" json:"ipr_number,omitempty"`
	FilingDate       *time.Time `gorm:"column:filing_date;type:date" json:"filing_date,omitempty"`
	Status           *string    `gorm:"column:status" json:"status,omitempty"`
	RelatedStartupID *uint      `gorm:"column:related_startup_id" json:"related_startup_id,omitempty"`
	CreatedAt        *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt        *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
	UserID           uint       `gorm:"column:user_id;not null;index" json:"user_id"`
}

func (IPR) TableName() string { return "ipr" }
