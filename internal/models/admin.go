package models

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Admin is an operator account for the HTTP API.
type Admin struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string    `gorm:"type:varchar(64);not null"` // sha256 hex
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Admin) TableName() string {
	return "admins"
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (a *Admin) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(a.Password), []byte(HashPassword(password))) == 1
}
