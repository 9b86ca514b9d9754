package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	SalePaid      PaymentStatus = "PAID"
	SalePending   PaymentStatus = "PENDING"
	SaleCancelled PaymentStatus = "CANCELLED"
)

// SalesOrder: venda importada do export do PDV. Upsert por ExternalID.
type SalesOrder struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"size:50;uniqueIndex;not null"`

	Origin        string        `gorm:"size:50"`
	OrderType     string        `gorm:"size:100"` // "Mesas/Comandas 3", "Balcão", "Delivery"...
	ItemsCount    int           `gorm:"default:0"`
	Amount        float64       `gorm:"default:0"`
	Status        string        `gorm:"size:50"`
	PaymentStatus PaymentStatus `gorm:"size:15;default:'PAID';index"`

	OpenedAt time.Time `gorm:"index;not null"`
	ClosedAt *time.Time
	Duration *int // segundos de atendimento

	Unit          string `gorm:"size:100"`
	TableNumber   *int
	IsCounter     bool `gorm:"default:false"`
	IsDelivery    bool `gorm:"default:false"`
	PaymentMethod string `gorm:"size:50"`

	SyncedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
