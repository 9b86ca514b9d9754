package models

import "time"

type EntryStatus string

const (
	EntryPresent EntryStatus = "PRESENT"
	EntryAbsent  EntryStatus = "ABSENT"
)

// TimeEntry: um registro de ponto por funcionário por dia.
// A unicidade (employee_id, date) é garantida por índice único composto.
type TimeEntry struct {
	ID         uint     `gorm:"primaryKey"`
	EmployeeID uint     `gorm:"uniqueIndex:idx_time_entries_employee_date;not null"`
	Employee   Employee
	Date       time.Time `gorm:"uniqueIndex:idx_time_entries_employee_date;index;not null"`

	WorkedLunch  bool `gorm:"default:false"`
	WorkedDinner bool `gorm:"default:false"`

	// Horários batidos ("HH:MM", vazio = não batido)
	ClockInLunch   string `gorm:"size:5"`
	ClockOutLunch  string `gorm:"size:5"`
	ClockInDinner  string `gorm:"size:5"`
	ClockOutDinner string `gorm:"size:5"`

	Status EntryStatus `gorm:"size:10;default:'PRESENT'"`
	Notes  string      `gorm:"size:255"`

	// Valores calculados na gravação (TotalValue = LunchValue + DinnerValue)
	LunchValue  float64 `gorm:"default:0"`
	DinnerValue float64 `gorm:"default:0"`
	TotalValue  float64 `gorm:"default:0"`

	CreatedByID *uint
	UpdatedByID *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
