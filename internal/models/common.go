package models

import (
	"time"
)

type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SingletonID is the fixed primary key of Profile and SiteConfiguration
const SingletonID uint = 1

func (b BaseModel) GetID() uint { return b.ID }
