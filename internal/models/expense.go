package models

import "time"

type Expense struct {
	ID          uint      `gorm:"primaryKey"`
	Category    string    `gorm:"size:50;index;not null"` // insumos, aluguel, energia...
	Description string    `gorm:"size:255;not null"`
	Amount      float64   `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"`
	Notes       string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
