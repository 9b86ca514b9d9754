package payroll

import (
	"testing"
	"time"

	"pizzaria-backend/internal/models"
)

func entry(empID uint, lunch, dinner bool, lunchValue, dinnerValue float64) models.TimeEntry {
	return models.TimeEntry{
		EmployeeID:   empID,
		Date:         time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		WorkedLunch:  lunch,
		WorkedDinner: dinner,
		Status:       models.EntryPresent,
		LunchValue:   lunchValue,
		DinnerValue:  dinnerValue,
		TotalValue:   lunchValue + dinnerValue,
	}
}

func TestBuildPaymentsSumsPersistedValues(t *testing.T) {
	employees := []models.Employee{{ID: 1, Name: "João"}}
	entries := []models.TimeEntry{
		entry(1, true, true, 50, 70),
		entry(1, false, true, 0, 80),
	}

	payments, total := BuildPayments(employees, entries, nil)
	if len(payments) != 1 {
		t.Fatalf("esperava 1 pagamento, veio %d", len(payments))
	}

	p := payments[0]
	if p.DaysWorked != 2 || p.LunchShifts != 1 || p.DinnerShifts != 2 {
		t.Fatalf("contagem de turnos errada: %+v", p)
	}
	if p.LunchTotal != 50 || p.DinnerTotal != 150 {
		t.Fatalf("somas erradas: %+v", p)
	}
	if p.GrossAmount != 200 || p.NetAmount != 200 {
		t.Fatalf("bruto/líquido errados: %+v", p)
	}
	if total != 200 {
		t.Fatalf("total do período = %v, esperado 200", total)
	}
}

func TestBuildPaymentsDeductsAdvances(t *testing.T) {
	employees := []models.Employee{{ID: 1, Name: "Maria"}}
	entries := []models.TimeEntry{entry(1, true, true, 60, 90)}
	advances := []models.Advance{
		{EmployeeID: 1, Amount: 40, Status: models.AdvancePaid},
		{EmployeeID: 1, Amount: 10, Status: models.AdvancePaid},
	}

	payments, total := BuildPayments(employees, entries, advances)
	p := payments[0]
	if p.Advances != 50 {
		t.Fatalf("adiantamentos = %v, esperado 50", p.Advances)
	}
	if p.NetAmount != 100 {
		t.Fatalf("líquido = %v, esperado 100 (150 - 50)", p.NetAmount)
	}
	if total != 100 {
		t.Fatalf("total = %v, esperado 100", total)
	}
}

func TestNoActivityEmployeeExcluded(t *testing.T) {
	employees := []models.Employee{
		{ID: 1, Name: "Com atividade"},
		{ID: 2, Name: "Sem atividade"},
	}
	entries := []models.TimeEntry{entry(1, true, false, 45, 0)}

	payments, _ := BuildPayments(employees, entries, nil)
	if len(payments) != 1 {
		t.Fatalf("funcionário sem atividade não gera linha, veio %d linhas", len(payments))
	}
	if payments[0].EmployeeID != 1 {
		t.Fatalf("linha do funcionário errado: %+v", payments[0])
	}
}

// Funcionário sem ponto mas com adiantamento pago no período gera linha
// (o desconto precisa aparecer no fechamento).
func TestAdvanceOnlyEmployeeIncluded(t *testing.T) {
	employees := []models.Employee{{ID: 7, Name: "Adiantado"}}
	advances := []models.Advance{{EmployeeID: 7, Amount: 200, Status: models.AdvancePaid}}

	payments, total := BuildPayments(employees, nil, advances)
	if len(payments) != 1 {
		t.Fatalf("esperava 1 linha, veio %d", len(payments))
	}
	if payments[0].NetAmount != -200 {
		t.Fatalf("líquido = %v, esperado -200", payments[0].NetAmount)
	}
	if total != -200 {
		t.Fatalf("total = %v, esperado -200", total)
	}
}

func TestAbsentEntriesDoNotCount(t *testing.T) {
	employees := []models.Employee{{ID: 1, Name: "Faltou"}}
	absent := entry(1, true, true, 50, 50)
	absent.Status = models.EntryAbsent

	payments, _ := BuildPayments(employees, []models.TimeEntry{absent}, nil)
	if len(payments) != 0 {
		t.Fatalf("falta não conta dia nem valor, veio %d linha(s)", len(payments))
	}
}

func TestFixedSalaryProration(t *testing.T) {
	employees := []models.Employee{{ID: 1, Name: "Mensalista", Salary: 3000, FixedSalary: true}}
	entries := []models.TimeEntry{
		entry(1, true, true, 0, 0),
		entry(1, true, true, 0, 0),
		entry(1, true, true, 0, 0),
	}

	payments, _ := BuildPayments(employees, entries, nil)
	p := payments[0]
	if p.FixedSalary != 300 {
		t.Fatalf("salário fixo = %v, esperado 300 (3000/30 × 3 dias)", p.FixedSalary)
	}
	if p.GrossAmount != 300 {
		t.Fatalf("bruto = %v, esperado 300", p.GrossAmount)
	}
}

func TestNonFixedEmployeeHasNoFixedSalary(t *testing.T) {
	employees := []models.Employee{{ID: 1, Name: "Diarista", Salary: 3000, FixedSalary: false}}
	entries := []models.TimeEntry{entry(1, true, false, 80, 0)}

	payments, _ := BuildPayments(employees, entries, nil)
	if payments[0].FixedSalary != 0 {
		t.Fatalf("diarista não recebe rateio de salário fixo: %+v", payments[0])
	}
}

// Invariante do período: totalAmount é sempre a soma dos líquidos.
func TestPeriodTotalMatchesPayments(t *testing.T) {
	employees := []models.Employee{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B", Salary: 1500, FixedSalary: true},
		{ID: 3, Name: "C"},
	}
	entries := []models.TimeEntry{
		entry(1, true, true, 33.33, 66.67),
		entry(2, true, false, 0, 0),
		entry(3, false, true, 0, 59.99),
	}
	advances := []models.Advance{
		{EmployeeID: 1, Amount: 25.50, Status: models.AdvancePaid},
		{EmployeeID: 3, Amount: 100, Status: models.AdvancePaid},
	}

	payments, total := BuildPayments(employees, entries, advances)

	var sum float64
	for _, p := range payments {
		if p.NetAmount != p.GrossAmount-p.Advances-p.Deductions {
			t.Fatalf("líquido fora do invariante: %+v", p)
		}
		sum += p.NetAmount
	}
	if diff := total - sum; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("total do período (%v) difere da soma dos líquidos (%v)", total, sum)
	}
}
