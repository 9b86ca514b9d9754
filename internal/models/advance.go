package models

import "time"

type AdvanceStatus string

const (
	AdvancePending    AdvanceStatus = "PENDING"
	AdvanceApproved   AdvanceStatus = "APPROVED"
	AdvancePaid       AdvanceStatus = "PAID"
	AdvanceRejected   AdvanceStatus = "REJECTED"
	AdvanceDiscounted AdvanceStatus = "DISCOUNTED" // já abatido em alguma folha
)

// Advance: adiantamento salarial. Só adiantamentos PAID com data de
// pagamento dentro do período entram no desconto da folha.
type Advance struct {
	ID          uint `gorm:"primaryKey"`
	EmployeeID  uint `gorm:"index;not null"`
	Employee    Employee
	Amount      float64       `gorm:"not null"`
	Status      AdvanceStatus `gorm:"size:15;default:'PENDING';index"`
	RequestDate time.Time     `gorm:"not null"`
	PaymentDate *time.Time
	Notes       string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
