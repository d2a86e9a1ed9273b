package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string     `json:"name" gorm:"default:''"`
	Email           string     `json:"email" gorm:"unique;not null"`
	Password        string     `json:"-" gorm:"not null"`
	Bio             string     `json:"bio" gorm:"type:text"`
	PhoneNumber     string     `json:"phone_number" gorm:"default:''"`
	Role            string     `json:"role" gorm:"default:'USER'"` // USER, INSTRUCTOR, ADMIN
	Avatar          string     `json:"avatar" gorm:"default:''"`
	IsEmailVerified bool       `json:"is_email_verified" gorm:"default:false"`
	LastLogin       *time.Time `json:"last_login"`
	IsDeleted       bool       `json:"-" gorm:"default:false"`
}
