package models

// Role is the closed set of account roles. Persisted as a plain string
// column but always compared as a typed value.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	UserID         uint    `gorm:"primaryKey;autoIncrement;column:user_id" json:"user_id"`
	Name           string  `gorm:"column:name" json:"name"`
	Email          string  `gorm:"column:email;unique" json:"email"`
	Password       string  `gorm:"column:password" json:"-"`
	Role           Role    `gorm:"column:role;default:user" json:"role"`
	ScholarID      *string `gorm:"column:scholar_id" json:"scholar_id,omitempty"`
	HIndex         *int    `gorm:"column:h_index" json:"h_index,omitempty"`
	I10Index       *int    `gorm:"column:i10_index" json:"i10_index,omitempty"`
	TotalCitations *int    `gorm:"column:total_citations" json:"total_citations,omitempty"`
	IDCardURL      *string `gorm:"column:id_card_url" json:"id_card_url,omitempty"`
	IsVerified     bool    `gorm:"column:is_verified;default:false" json:"is_verified"`
}

func (User) TableName() string { return "users" }
