// Package payroll fecha períodos de folha de pagamento. A agregação soma
// os valores já calculados em cada registro de ponto — nunca recalcula
// tarifa: mudança retroativa de valores exige reprocessar o ponto, não o
// período.
package payroll

import (
	"pizzaria-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Mensalistas com salário fixo são rateados por dia de calendário (÷30).
// Diferente do ÷26 da forma de pagamento MONTH do ponto: são duas
// convenções distintas para duas classificações de funcionário.
const fixedSalaryDivisor = 30

// PaymentDraft: uma linha de pagamento calculada, pronta para virar
// models.PayrollPayment dentro do snapshot do período.
type PaymentDraft struct {
	EmployeeID   uint
	EmployeeName string

	DaysWorked   int
	LunchShifts  int
	DinnerShifts int

	FixedSalary float64
	LunchTotal  float64
	DinnerTotal float64
	GrossAmount float64
	Advances    float64
	Deductions  float64
	NetAmount   float64
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// BuildPayments monta uma linha de pagamento por funcionário com atividade
// no período e o total do período (soma dos líquidos).
//
// entries deve conter só registros do intervalo; advances só adiantamentos
// PAID com data de pagamento no intervalo (quem consulta o banco é o
// handler). Funcionário sem valor bruto e sem adiantamento não gera linha.
func BuildPayments(employees []models.Employee, entries []models.TimeEntry, advances []models.Advance) ([]PaymentDraft, float64) {
	entriesByEmployee := make(map[uint][]models.TimeEntry)
	for _, e := range entries {
		if e.Status != models.EntryPresent {
			continue // faltas não contam dia nem valor
		}
		entriesByEmployee[e.EmployeeID] = append(entriesByEmployee[e.EmployeeID], e)
	}

	advancesByEmployee := make(map[uint]decimal.Decimal)
	for _, adv := range advances {
		advancesByEmployee[adv.EmployeeID] = advancesByEmployee[adv.EmployeeID].Add(decimal.NewFromFloat(adv.Amount))
	}

	payments := make([]PaymentDraft, 0, len(employees))
	total := decimal.Zero

	for _, emp := range employees {
		empEntries := entriesByEmployee[emp.ID]

		daysWorked := len(empEntries)
		lunchShifts := 0
		dinnerShifts := 0
		lunchTotal := decimal.Zero
		dinnerTotal := decimal.Zero

		for _, e := range empEntries {
			if e.WorkedLunch {
				lunchShifts++
			}
			if e.WorkedDinner {
				dinnerShifts++
			}
			lunchTotal = lunchTotal.Add(decimal.NewFromFloat(e.LunchValue))
			dinnerTotal = dinnerTotal.Add(decimal.NewFromFloat(e.DinnerValue))
		}

		fixedSalary := decimal.Zero
		if emp.FixedSalary && daysWorked > 0 {
			// Rateio simples (salário/30 por dia), não calendário-exato.
			fixedSalary = decimal.NewFromFloat(emp.Salary).
				Div(decimal.NewFromInt(fixedSalaryDivisor)).
				Mul(decimal.NewFromInt(int64(daysWorked))).
				Round(2)
		}

		gross := fixedSalary.Add(lunchTotal).Add(dinnerTotal).Round(2)
		advAmount := advancesByEmployee[emp.ID]
		deductions := decimal.Zero // reservado; sempre 0 no fechamento
		net := gross.Sub(advAmount).Sub(deductions).Round(2)

		if gross.IsZero() && advAmount.IsZero() {
			continue
		}

		payments = append(payments, PaymentDraft{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			DaysWorked:   daysWorked,
			LunchShifts:  lunchShifts,
			DinnerShifts: dinnerShifts,
			FixedSalary:  round2(fixedSalary),
			LunchTotal:   round2(lunchTotal),
			DinnerTotal:  round2(dinnerTotal),
			GrossAmount:  round2(gross),
			Advances:     round2(advAmount),
			Deductions:   round2(deductions),
			NetAmount:    round2(net),
		})

		total = total.Add(net)
	}

	return payments, round2(total)
}
