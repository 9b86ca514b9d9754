package models

import "time"

type MenuCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Description string `gorm:"size:255"`
	SortOrder   int    `gorm:"default:0"`
	Active      bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []MenuItem `gorm:"constraint:OnDelete:CASCADE"`
}

type MenuItem struct {
	ID             uint `gorm:"primaryKey"`
	MenuCategoryID uint `gorm:"index;not null"`
	MenuCategory   MenuCategory
	Name           string  `gorm:"size:100;not null"`
	Description    string  `gorm:"size:500"`
	Price          float64 `gorm:"not null"`
	ImageURL       string  `gorm:"size:255"`
	Available      bool    `gorm:"default:true"`
	SortOrder      int     `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
