package sales

import (
	"sort"
	"strconv"
	"time"

	"pizzaria-backend/internal/models"
)

type PeriodInfo struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	DaysInMonth int    `json:"days_in_month"`
	CurrentDay  int    `json:"current_day"`
}

type SummaryStats struct {
	TotalOrders      int     `json:"total_orders"`
	TotalAmount      float64 `json:"total_amount"`
	TotalItems       int     `json:"total_items"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	AvgItemsPerOrder float64 `json:"avg_items_per_order"`
	DailyAvg         float64 `json:"daily_avg"`
	MonthProjection  float64 `json:"month_projection"`
}

type PaymentStats struct {
	PaidOrders     int     `json:"paid_orders"`
	PaidAmount     float64 `json:"paid_amount"`
	PendingOrders  int     `json:"pending_orders"`
	PendingAmount  float64 `json:"pending_amount"`
	PaidPercentage float64 `json:"paid_percentage"`
}

type OrderTypeStats struct {
	Count      int     `json:"count"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type OrderTypesStats struct {
	Counter  OrderTypeStats `json:"counter"`
	Table    OrderTypeStats `json:"table"`
	Delivery OrderTypeStats `json:"delivery"`
}

type TimingStats struct {
	AvgDuration          float64 `json:"avg_duration"`
	AvgDurationFormatted string  `json:"avg_duration_formatted"`
}

type WeekdayDistribution struct {
	Labels  []string  `json:"labels"`
	Orders  []int     `json:"orders"`
	Amounts []float64 `json:"amounts"`
}

type HourDistribution struct {
	Labels  []string  `json:"labels"`
	Orders  []int     `json:"orders"`
	Amounts []float64 `json:"amounts"`
}

type DayBucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type Distribution struct {
	ByWeekday WeekdayDistribution  `json:"by_weekday"`
	ByHour    HourDistribution     `json:"by_hour"`
	ByDay     map[string]DayBucket `json:"by_day"`
}

type TableStats struct {
	Table  int     `json:"table"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type ComparisonStats struct {
	TotalAmount   float64 `json:"total_amount"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	AmountChange  float64 `json:"amount_change"` // % contra o mês anterior
	OrdersChange  float64 `json:"orders_change"`
}

type StatsResponse struct {
	Period       PeriodInfo       `json:"period"`
	Summary      SummaryStats     `json:"summary"`
	Payment      PaymentStats     `json:"payment"`
	OrderTypes   OrderTypesStats  `json:"order_types"`
	Timing       TimingStats      `json:"timing"`
	Distribution Distribution     `json:"distribution"`
	TopTables    []TableStats     `json:"top_tables"`
	Comparison   *ComparisonStats `json:"comparison"`
}

var weekdayLabels = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// BuildStats agrega as vendas de um mês. "now" entra só para calcular o dia
// corrente da projeção (mês fechado projeta o próprio total).
func BuildStats(orders []models.SalesOrder, start, end, now time.Time) StatsResponse {
	totalOrders := len(orders)
	totalAmount := 0.0
	totalItems := 0

	paidCount, pendingCount := 0, 0
	paidAmount, pendingAmount := 0.0, 0.0

	var counter, table, delivery OrderTypeStats

	durationSum := 0.0
	durationCount := 0

	weekdayOrders := make([]int, 7)
	weekdayAmounts := make([]float64, 7)
	hourOrders := make([]int, 24)
	hourAmounts := make([]float64, 24)
	byDay := make(map[string]DayBucket)
	tableTotals := make(map[int]*TableStats)

	for i := range orders {
		o := &orders[i]
		totalAmount += o.Amount
		totalItems += o.ItemsCount

		switch o.PaymentStatus {
		case models.SalePaid:
			paidCount++
			paidAmount += o.Amount
		case models.SalePending:
			pendingCount++
			pendingAmount += o.Amount
		}

		switch {
		case o.IsCounter:
			counter.Count++
			counter.Amount += o.Amount
		case o.IsDelivery:
			delivery.Count++
			delivery.Amount += o.Amount
		default:
			table.Count++
			table.Amount += o.Amount
		}

		if o.Duration != nil && *o.Duration > 0 {
			durationSum += float64(*o.Duration)
			durationCount++
		}

		wd := int(o.OpenedAt.Weekday())
		weekdayOrders[wd]++
		weekdayAmounts[wd] += o.Amount

		h := o.OpenedAt.Hour()
		hourOrders[h]++
		hourAmounts[h] += o.Amount

		day := o.OpenedAt.Format("2006-01-02")
		bucket := byDay[day]
		bucket.Count++
		bucket.Amount += o.Amount
		byDay[day] = bucket

		if o.TableNumber != nil {
			ts, ok := tableTotals[*o.TableNumber]
			if !ok {
				ts = &TableStats{Table: *o.TableNumber}
				tableTotals[*o.TableNumber] = ts
			}
			ts.Count++
			ts.Amount += o.Amount
		}
	}

	avgOrderValue := 0.0
	avgItemsPerOrder := 0.0
	if totalOrders > 0 {
		avgOrderValue = totalAmount / float64(totalOrders)
		avgItemsPerOrder = float64(totalItems) / float64(totalOrders)
		counter.Percentage = float64(counter.Count) / float64(totalOrders) * 100
		table.Percentage = float64(table.Count) / float64(totalOrders) * 100
		delivery.Percentage = float64(delivery.Count) / float64(totalOrders) * 100
	}

	avgDuration := 0.0
	if durationCount > 0 {
		avgDuration = durationSum / float64(durationCount)
	}

	paidPercentage := 0.0
	if totalOrders > 0 {
		paidPercentage = float64(paidCount) / float64(totalOrders) * 100
	}

	daysInMonth := end.Day()
	currentDay := daysInMonth
	if now.Year() == start.Year() && now.Month() == start.Month() {
		currentDay = now.Day()
	}
	dailyAvg := 0.0
	if currentDay > 0 {
		dailyAvg = totalAmount / float64(currentDay)
	}
	monthProjection := dailyAvg * float64(daysInMonth)

	topTables := topTablesByAmount(tableTotals, 5)

	hourLabels := make([]string, 24)
	for i := range hourLabels {
		hourLabels[i] = FormatHourLabel(i)
	}

	return StatsResponse{
		Period: PeriodInfo{
			StartDate:   start.Format("2006-01-02"),
			EndDate:     end.Format("2006-01-02"),
			DaysInMonth: daysInMonth,
			CurrentDay:  currentDay,
		},
		Summary: SummaryStats{
			TotalOrders:      totalOrders,
			TotalAmount:      totalAmount,
			TotalItems:       totalItems,
			AvgOrderValue:    avgOrderValue,
			AvgItemsPerOrder: avgItemsPerOrder,
			DailyAvg:         dailyAvg,
			MonthProjection:  monthProjection,
		},
		Payment: PaymentStats{
			PaidOrders:     paidCount,
			PaidAmount:     paidAmount,
			PendingOrders:  pendingCount,
			PendingAmount:  pendingAmount,
			PaidPercentage: paidPercentage,
		},
		OrderTypes: OrderTypesStats{Counter: counter, Table: table, Delivery: delivery},
		Timing: TimingStats{
			AvgDuration:          avgDuration,
			AvgDurationFormatted: FormatDuration(avgDuration),
		},
		Distribution: Distribution{
			ByWeekday: WeekdayDistribution{Labels: weekdayLabels, Orders: weekdayOrders, Amounts: weekdayAmounts},
			ByHour:    HourDistribution{Labels: hourLabels, Orders: hourOrders, Amounts: hourAmounts},
			ByDay:     byDay,
		},
		TopTables: topTables,
	}
}

// BuildComparison compara o mês atual com o anterior, em variação percentual.
func BuildComparison(current SummaryStats, previous []models.SalesOrder) *ComparisonStats {
	prevAmount := 0.0
	for i := range previous {
		prevAmount += previous[i].Amount
	}
	prevOrders := len(previous)

	comp := &ComparisonStats{
		TotalAmount: prevAmount,
		TotalOrders: prevOrders,
	}
	if prevOrders > 0 {
		comp.AvgOrderValue = prevAmount / float64(prevOrders)
		comp.OrdersChange = (float64(current.TotalOrders) - float64(prevOrders)) / float64(prevOrders) * 100
	}
	if prevAmount > 0 {
		comp.AmountChange = (current.TotalAmount - prevAmount) / prevAmount * 100
	}
	return comp
}

func topTablesByAmount(totals map[int]*TableStats, limit int) []TableStats {
	out := make([]TableStats, 0, len(totals))
	for _, ts := range totals {
		out = append(out, *ts)
	}
	// valor decrescente; empate decide pela mesa menor
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Table < out[j].Table
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FormatHourLabel gera o rótulo "13h" dos gráficos por hora.
func FormatHourLabel(hour int) string {
	return strconv.Itoa(hour) + "h"
}
