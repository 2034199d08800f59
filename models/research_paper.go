package models

import "time"

type ResearchPaper struct {
	PaperID         uint       `gorm:"primaryKey;autoIncrement;column:paper_id" json:"paper_id"`
	Title           string     `gorm:"column:title;not null" json:"title"`
	Abstract        *string    `gorm:"column:abstract;type:text" json:"abstract,omitempty"`
	Authors         *string    `gorm:"column:authors" json:"authors,omitempty"` // comma-separated names
	PublicationDate *time.Time `gorm:"column:publication_date;type:date" json:"publication_date,omitempty"`
	DOI             *string    `gorm:"column:doi" json:"doi,omitempty"`
	Citations       *int       `gorm:"column:citations" json:"citations,omitempty"`
	Status          *string    `gorm:"column:status" json:"status,omitempty"` // e.g. Published, Draft
	CreatedAt       *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
	UserID          uint       `gorm:"column:user_id;not null;index" json:"user_id"`
}

func (ResearchPaper) TableName() string { return "research_paper" }
