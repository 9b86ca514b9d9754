package models

import "time"

type PeriodType string

const (
	PeriodWeekly   PeriodType = "WEEKLY"
	PeriodBiweekly PeriodType = "BIWEEKLY"
	PeriodMonthly  PeriodType = "MONTHLY"
	PeriodCustom   PeriodType = "CUSTOM"
)

// PayrollPeriod: fechamento de folha. É um snapshot imutável: uma vez
// criado, os pagamentos não são recalculados.
type PayrollPeriod struct {
	ID          uint       `gorm:"primaryKey"`
	StartDate   time.Time  `gorm:"index;not null"`
	EndDate     time.Time  `gorm:"not null"`
	PeriodType  PeriodType `gorm:"size:10;default:'CUSTOM'"`
	TotalAmount float64    `gorm:"default:0"` // soma dos NetAmount
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Payments []PayrollPayment `gorm:"constraint:OnDelete:CASCADE"`
}

// PayrollPayment: uma linha de pagamento por funcionário com atividade no
// período. Invariante: NetAmount = GrossAmount - Advances - Deductions.
type PayrollPayment struct {
	ID           uint   `gorm:"primaryKey"`
	PeriodID     uint   `gorm:"index;not null"`
	EmployeeID   uint   `gorm:"index;not null"`
	EmployeeName string `gorm:"size:100"` // denormalizado para o recibo

	DaysWorked   int     `gorm:"default:0"`
	LunchShifts  int     `gorm:"default:0"`
	DinnerShifts int     `gorm:"default:0"`
	FixedSalary  float64 `gorm:"default:0"`
	LunchTotal   float64 `gorm:"default:0"`
	DinnerTotal  float64 `gorm:"default:0"`
	GrossAmount  float64 `gorm:"default:0"`
	Advances     float64 `gorm:"default:0"`
	Deductions   float64 `gorm:"default:0"`
	NetAmount    float64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayrollEntry: folha mensal simples (salário base - adiantamentos),
// uma entrada por funcionário por mês "YYYY-MM".
type PayrollEntry struct {
	ID         uint   `gorm:"primaryKey"`
	EmployeeID uint   `gorm:"uniqueIndex:idx_payroll_entries_employee_month;not null"`
	Employee   Employee
	Month      string `gorm:"size:7;uniqueIndex:idx_payroll_entries_employee_month;not null"`

	BaseSalary  float64 `gorm:"default:0"`
	Advances    float64 `gorm:"default:0"`
	Bonuses     float64 `gorm:"default:0"`
	Deductions  float64 `gorm:"default:0"`
	NetSalary   float64 `gorm:"default:0"`
	Paid        bool    `gorm:"default:false"`
	PaymentDate *time.Time
	Notes       string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
