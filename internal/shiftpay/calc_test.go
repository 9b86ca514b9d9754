package shiftpay

import (
	"testing"
	"time"

	"pizzaria-backend/internal/models"
)

// 14/06/2025 é sábado, 17/06/2025 é terça.
var (
	saturday = time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC)
	sunday   = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
)

func TestCalculateHoursOvernight(t *testing.T) {
	if got := CalculateHours("17:00", "00:00"); got != 7.0 {
		t.Fatalf("17:00→00:00 = %v, esperado 7", got)
	}
	if got := CalculateHours("22:00", "02:00"); got != 4.0 {
		t.Fatalf("22:00→02:00 = %v, esperado 4", got)
	}
}

func TestCalculateHoursSameDay(t *testing.T) {
	if got := CalculateHours("11:00", "15:00"); got != 4.0 {
		t.Fatalf("11:00→15:00 = %v, esperado 4", got)
	}
	if got := CalculateHours("18:00", "23:30"); got != 5.5 {
		t.Fatalf("18:00→23:30 = %v, esperado 5.5", got)
	}
}

func TestCalculateHoursDegenerateInput(t *testing.T) {
	if got := CalculateHours("", "15:00"); got != 0 {
		t.Fatalf("entrada vazia deveria dar 0, deu %v", got)
	}
	if got := CalculateHours("11:00", ""); got != 0 {
		t.Fatalf("saída vazia deveria dar 0, deu %v", got)
	}
	if got := CalculateHours("abc", "15:00"); got != 0 {
		t.Fatalf("horário malformado deveria dar 0, deu %v", got)
	}
	if got := CalculateHours("11h00", "15:00"); got != 0 {
		t.Fatalf("horário sem ':' deveria dar 0, deu %v", got)
	}
}

func TestIsWeekend(t *testing.T) {
	if !IsWeekend(saturday) || !IsWeekend(sunday) {
		t.Fatal("sábado e domingo são fim de semana")
	}
	if IsWeekend(tuesday) {
		t.Fatal("terça não é fim de semana")
	}
}

func TestHourlyLunch(t *testing.T) {
	emp := &models.Employee{
		LunchPaymentType: models.PaymentHour,
		LunchValue:       10,
		LunchStartTime:   "11:00",
		LunchEndTime:     "15:00",
	}
	v := CalculateShiftValues(tuesday, true, false, emp)
	if v.LunchValue != 40.00 {
		t.Fatalf("almoço por hora = %v, esperado 40.00", v.LunchValue)
	}
	if v.DinnerValue != 0 {
		t.Fatalf("jantar não trabalhado deveria ser 0, deu %v", v.DinnerValue)
	}
	if v.TotalValue != 40.00 {
		t.Fatalf("total = %v, esperado 40.00", v.TotalValue)
	}
}

func TestDinnerWeekendSelection(t *testing.T) {
	emp := &models.Employee{
		DinnerPaymentType:  models.PaymentShift,
		DinnerWeekdayValue: 60,
		DinnerWeekendValue: 80,
	}

	if v := CalculateShiftValues(saturday, false, true, emp); v.DinnerValue != 80 {
		t.Fatalf("jantar de sábado = %v, esperado 80", v.DinnerValue)
	}
	if v := CalculateShiftValues(tuesday, false, true, emp); v.DinnerValue != 60 {
		t.Fatalf("jantar de terça = %v, esperado 60", v.DinnerValue)
	}
}

// Mensalista do jantar usa o valor de semana como salário mensal, mesmo no
// fim de semana. Comportamento observado em produção; não "corrigir".
func TestMonthlyDinnerIgnoresWeekend(t *testing.T) {
	emp := &models.Employee{
		DinnerPaymentType:  models.PaymentMonth,
		DinnerWeekdayValue: 2600,
		DinnerWeekendValue: 9999,
	}

	if v := CalculateShiftValues(saturday, false, true, emp); v.DinnerValue != 100.00 {
		t.Fatalf("mensalista no sábado = %v, esperado 100.00 (2600/26)", v.DinnerValue)
	}
	if v := CalculateShiftValues(tuesday, false, true, emp); v.DinnerValue != 100.00 {
		t.Fatalf("mensalista na terça = %v, esperado 100.00 (2600/26)", v.DinnerValue)
	}
}

func TestWeeklyDivisor(t *testing.T) {
	emp := &models.Employee{
		LunchPaymentType: models.PaymentWeek,
		LunchValue:       300,
	}
	if v := CalculateShiftValues(tuesday, true, false, emp); v.LunchValue != 50.00 {
		t.Fatalf("semanal = %v, esperado 50.00 (300/6)", v.LunchValue)
	}
}

func TestNotWorkedShiftIsZero(t *testing.T) {
	emp := &models.Employee{
		LunchPaymentType:   models.PaymentShift,
		LunchValue:         120,
		DinnerPaymentType:  models.PaymentShift,
		DinnerWeekdayValue: 90,
	}
	v := CalculateShiftValues(tuesday, false, false, emp)
	if v.LunchValue != 0 || v.DinnerValue != 0 || v.TotalValue != 0 {
		t.Fatalf("turnos não trabalhados deveriam zerar, deu %+v", v)
	}
}

func TestUnknownPaymentTypeFallsBackToFlat(t *testing.T) {
	emp := &models.Employee{
		LunchPaymentType: models.PaymentType("BIWEEKLY???"),
		LunchValue:       55,
	}
	if v := CalculateShiftValues(tuesday, true, false, emp); v.LunchValue != 55 {
		t.Fatalf("tipo desconhecido deveria cair no valor fixo, deu %v", v.LunchValue)
	}
}

// Cada turno é arredondado antes da soma: o total precisa bater com os
// valores persistidos por turno.
func TestRoundingBeforeSum(t *testing.T) {
	emp := &models.Employee{
		LunchPaymentType:   models.PaymentWeek,
		LunchValue:         100, // 100/6 = 16.666... → 16.67
		DinnerPaymentType:  models.PaymentWeek,
		DinnerWeekdayValue: 100,
	}
	v := CalculateShiftValues(tuesday, true, true, emp)
	if v.LunchValue != 16.67 || v.DinnerValue != 16.67 {
		t.Fatalf("arredondamento por turno falhou: %+v", v)
	}
	if v.TotalValue != v.LunchValue+v.DinnerValue {
		t.Fatalf("total = %v, esperado a soma dos turnos arredondados", v.TotalValue)
	}
	if diff := v.TotalValue - 33.34; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("total = %v, esperado 33.34", v.TotalValue)
	}
}

func TestMissingRateIsZero(t *testing.T) {
	emp := &models.Employee{
		LunchPaymentType:  models.PaymentHour,
		LunchStartTime:    "11:00",
		LunchEndTime:      "15:00",
		DinnerPaymentType: models.PaymentShift,
	}
	v := CalculateShiftValues(saturday, true, true, emp)
	if v.TotalValue != 0 {
		t.Fatalf("valores ausentes deveriam contribuir zero, deu %+v", v)
	}
}
