package models

import "time"

type Revenue struct {
	ID          uint      `gorm:"primaryKey"`
	Source      string    `gorm:"size:50;index;not null"` // salão, delivery, ifood...
	Description string    `gorm:"size:255"`
	Amount      float64   `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"`
	Notes       string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
