// Package shiftpay calcula o valor de um registro de ponto a partir da
// configuração de pagamento do funcionário. Cálculo puro: sem banco, sem
// rede. Entradas malformadas nunca geram erro, só contribuição zero, para
// que cargas em lote de dados históricos imperfeitos não abortem no meio.
package shiftpay

import (
	"strconv"
	"strings"
	"time"

	"pizzaria-backend/internal/models"

	"github.com/shopspring/decimal"
)

const (
	weekDivisor  = 6  // semana de 6 dias de trabalho
	monthDivisor = 26 // ~26 dias úteis por mês
)

// Values: resultado do cálculo de um registro de ponto.
// TotalValue é sempre LunchValue + DinnerValue, cada um já arredondado
// para 2 casas (os valores exibidos por turno precisam fechar com o total).
type Values struct {
	LunchValue  float64
	DinnerValue float64
	TotalValue  float64
}

// IsWeekend: sábado ou domingo do calendário local.
func IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// parseClock converte "HH:MM" em minutos desde meia-noite.
func parseClock(s string) (int, bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// CalculateHours retorna as horas fracionárias entre dois horários "HH:MM".
// Saída menor ou igual à entrada significa turno virando a meia-noite
// (ex: 17:00 → 00:00 = 7h). Horário ausente ou malformado retorna 0.
func CalculateHours(startTime, endTime string) float64 {
	if startTime == "" || endTime == "" {
		return 0
	}
	start, ok := parseClock(startTime)
	if !ok {
		return 0
	}
	end, ok := parseClock(endTime)
	if !ok {
		return 0
	}

	if end <= start {
		end += 24 * 60
	}

	return float64(end-start) / 60
}

// shiftValue aplica a forma de pagamento do turno sobre o valor base.
// Tipo desconhecido cai no valor fixo por turno.
func shiftValue(paymentType models.PaymentType, rate decimal.Decimal, startTime, endTime string) decimal.Decimal {
	switch paymentType {
	case models.PaymentHour:
		hours := CalculateHours(startTime, endTime)
		return rate.Mul(decimal.NewFromFloat(hours))
	case models.PaymentWeek:
		return rate.Div(decimal.NewFromInt(weekDivisor))
	case models.PaymentMonth:
		return rate.Div(decimal.NewFromInt(monthDivisor))
	default: // SHIFT, DAY ou qualquer valor fora da enumeração
		return rate
	}
}

// CalculateShiftValues calcula almoço, jantar e total de um dia trabalhado
// usando a configuração ATUAL do funcionário.
//
// O almoço usa sempre LunchValue. O jantar escolhe entre valor de semana e
// de fim de semana — exceto mensalista (MONTH), que usa o valor de semana
// como salário mensal em qualquer dia.
func CalculateShiftValues(date time.Time, workedLunch, workedDinner bool, emp *models.Employee) Values {
	lunch := decimal.Zero
	dinner := decimal.Zero

	if workedLunch {
		lunch = shiftValue(
			emp.LunchPaymentType,
			decimal.NewFromFloat(emp.LunchValue),
			emp.LunchStartTime,
			emp.LunchEndTime,
		)
	}

	if workedDinner {
		base := emp.DinnerWeekdayValue
		if emp.DinnerPaymentType != models.PaymentMonth && IsWeekend(date) {
			base = emp.DinnerWeekendValue
		}
		dinner = shiftValue(
			emp.DinnerPaymentType,
			decimal.NewFromFloat(base),
			emp.DinnerStartTime,
			emp.DinnerEndTime,
		)
	}

	lunchValue, _ := lunch.Round(2).Float64()
	dinnerValue, _ := dinner.Round(2).Float64()

	return Values{
		LunchValue:  lunchValue,
		DinnerValue: dinnerValue,
		TotalValue:  lunchValue + dinnerValue,
	}
}
