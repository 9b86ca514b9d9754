package models

import "time"

// PaymentType: forma de pagamento de um turno.
// Qualquer valor fora da enumeração é tratado como valor fixo por turno.
type PaymentType string

const (
	PaymentHour  PaymentType = "HOUR"  // por hora trabalhada
	PaymentShift PaymentType = "SHIFT" // valor fixo por turno
	PaymentDay   PaymentType = "DAY"   // valor fixo por dia
	PaymentWeek  PaymentType = "WEEK"  // valor semanal (÷6 dias)
	PaymentMonth PaymentType = "MONTH" // valor mensal (÷26 dias úteis)
)

type Employee struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100;not null"`
	Role     string `gorm:"size:50;not null"` // função (pizzaiolo, garçom...)
	Phone    string `gorm:"size:30"`
	Document string `gorm:"size:30"`
	HireDate time.Time
	Active   bool `gorm:"default:true"`

	// Mensalistas: salário fixo rateado por dia trabalhado (÷30),
	// independente da contagem de turnos.
	Salary      float64 `gorm:"default:0"`
	FixedSalary bool    `gorm:"default:false"`

	// Configuração do ALMOÇO
	WorksLunch       bool        `gorm:"default:false"`
	LunchPaymentType PaymentType `gorm:"size:10;default:'SHIFT'"`
	LunchValue       float64     `gorm:"default:0"`
	LunchStartTime   string      `gorm:"size:5"` // "HH:MM", usado só em HOUR
	LunchEndTime     string      `gorm:"size:5"`

	// Configuração do JANTAR (valor de semana x fim de semana)
	WorksDinner        bool        `gorm:"default:true"`
	DinnerPaymentType  PaymentType `gorm:"size:10;default:'SHIFT'"`
	DinnerWeekdayValue float64     `gorm:"default:0"`
	DinnerWeekendValue float64     `gorm:"default:0"`
	DinnerStartTime    string      `gorm:"size:5"`
	DinnerEndTime      string      `gorm:"size:5"`

	CreatedAt time.Time
	UpdatedAt time.Time

	TimeEntries []TimeEntry
	Advances    []Advance
}
