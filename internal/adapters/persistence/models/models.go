package models

import (
	"time"

	"staffdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the user shape returned next to a freshly issued token
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PersonalAccessToken represents personal_access_tokens table.
// Only the SHA-256 of the bearer value is stored.
type PersonalAccessToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PersonalAccessToken) TableName() string {
	return "personal_access_tokens"
}

// ============================================================
// Employee Tables
// ============================================================

// Employee represents employees table
type Employee struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	Name      string                `gorm:"size:255;not null" json:"name"`
	Email     string                `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Position  string                `gorm:"size:255;not null" json:"position"`
	Salary    float64               `gorm:"type:decimal(10,2);not null" json:"salary"`
	Status    domain.EmployeeStatus `gorm:"size:16;not null;default:active;check:chk_employees_status,status IN ('active','inactive')" json:"status"`
	CreatedAt time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// Apply overwrites every editable attribute with f
func (e *Employee) Apply(f domain.EmployeeFields) {
	e.Name = f.Name
	e.Email = f.Email
	e.Position = f.Position
	e.Salary = f.Salary
	e.Status = f.Status
}

// AutoMigrate creates or updates every table the service owns
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&PersonalAccessToken{},
		&Employee{},
	)
}
