package models

import "time"

// ShiftConfig: valores padrão sugeridos no cadastro de funcionários
// (lunch, dinner_weekday, dinner_weekend). Apenas informativo: o cálculo
// do ponto usa sempre os valores do próprio funcionário.
type ShiftConfig struct {
	ID           uint    `gorm:"primaryKey"`
	Key          string  `gorm:"size:30;uniqueIndex;not null"`
	Label        string  `gorm:"size:100"`
	DefaultValue float64 `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
