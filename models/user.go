package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User backs password sign-in.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"unique;not null"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(50);default:'user'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Session is the token pair handed out on sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Migrate function for auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Product{})
}
