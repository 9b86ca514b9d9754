package sales

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pizzaria-backend/internal/models"
)

var (
	tableNumberRe = regexp.MustCompile(`(\d+)$`)
	hoursRe       = regexp.MustCompile(`(\d+)h`)
	minutesRe     = regexp.MustCompile(`(\d+)m`)
	secondsRe     = regexp.MustCompile(`(\d+)s`)
)

// ParseOrderType extrai as flags e o número da mesa do tipo vindo do PDV.
// Ex: "Mesas/Comandas 3" vira mesa 3; "Balcão" e "Delivery" viram flags.
func ParseOrderType(orderType string) (isCounter, isDelivery bool, tableNumber *int) {
	lower := strings.ToLower(orderType)
	isCounter = strings.Contains(lower, "balcão") || strings.Contains(lower, "balcao")
	isDelivery = strings.Contains(lower, "delivery")

	if m := tableNumberRe.FindStringSubmatch(orderType); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			tableNumber = &n
		}
	}
	return isCounter, isDelivery, tableNumber
}

// ParseDuration converte a duração do PDV em segundos. Aceita número
// (segundos) ou texto no formato "6h 4m 24s"; qualquer outra coisa vira nil.
func ParseDuration(raw any) *int {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	case string:
		if v == "" {
			return nil
		}
		total := 0
		if m := hoursRe.FindStringSubmatch(v); m != nil {
			h, _ := strconv.Atoi(m[1])
			total += h * 3600
		}
		if m := minutesRe.FindStringSubmatch(v); m != nil {
			min, _ := strconv.Atoi(m[1])
			total += min * 60
		}
		if m := secondsRe.FindStringSubmatch(v); m != nil {
			s, _ := strconv.Atoi(m[1])
			total += s
		}
		return &total
	}
	return nil
}

// ParsePaymentStatus deriva o status de pagamento do texto livre do PDV.
// "fiado"/"pendente" viram PENDING, qualquer variação de cancelado vira
// CANCELLED, o resto é PAID.
func ParsePaymentStatus(status string) models.PaymentStatus {
	lower := strings.ToLower(status)
	if strings.Contains(lower, "fiado") || strings.Contains(lower, "pendente") {
		return models.SalePending
	}
	if strings.Contains(lower, "cancel") {
		return models.SaleCancelled
	}
	return models.SalePaid
}

// FormatDuration apresenta segundos como "2h 15m" ou "45m".
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0m"
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
