package sales

import (
	"testing"
	"time"

	"pizzaria-backend/internal/models"
)

func TestParseOrderTypeTable(t *testing.T) {
	isCounter, isDelivery, table := ParseOrderType("Mesas/Comandas 3")
	if isCounter || isDelivery {
		t.Fatalf("mesa não pode ser balcão nem delivery (counter=%v delivery=%v)", isCounter, isDelivery)
	}
	if table == nil || *table != 3 {
		t.Fatalf("esperava mesa 3, veio %v", table)
	}
}

func TestParseOrderTypeCounter(t *testing.T) {
	isCounter, isDelivery, table := ParseOrderType("Balcão")
	if !isCounter {
		t.Fatal("esperava is_counter")
	}
	if isDelivery {
		t.Fatal("balcão não é delivery")
	}
	if table != nil {
		t.Fatalf("balcão não tem mesa, veio %v", *table)
	}
}

func TestParseOrderTypeCounterWithoutAccent(t *testing.T) {
	isCounter, _, _ := ParseOrderType("balcao 12")
	if !isCounter {
		t.Fatal("esperava is_counter mesmo sem acento")
	}
}

func TestParseOrderTypeDelivery(t *testing.T) {
	_, isDelivery, _ := ParseOrderType("Delivery iFood")
	if !isDelivery {
		t.Fatal("esperava is_delivery")
	}
}

func TestParseOrderTypeEmpty(t *testing.T) {
	isCounter, isDelivery, table := ParseOrderType("")
	if isCounter || isDelivery || table != nil {
		t.Fatal("tipo vazio não pode virar flag nem mesa")
	}
}

func TestParseDurationString(t *testing.T) {
	d := ParseDuration("6h 4m 24s")
	if d == nil {
		t.Fatal("esperava duração")
	}
	want := 6*3600 + 4*60 + 24
	if *d != want {
		t.Fatalf("esperava %d segundos, veio %d", want, *d)
	}
}

func TestParseDurationMinutesOnly(t *testing.T) {
	d := ParseDuration("45m")
	if d == nil || *d != 45*60 {
		t.Fatalf("esperava %d, veio %v", 45*60, d)
	}
}

func TestParseDurationNumber(t *testing.T) {
	// número vindo de JSON chega como float64
	d := ParseDuration(float64(3700))
	if d == nil || *d != 3700 {
		t.Fatalf("esperava 3700, veio %v", d)
	}
}

func TestParseDurationNil(t *testing.T) {
	if d := ParseDuration(nil); d != nil {
		t.Fatalf("esperava nil, veio %v", *d)
	}
	if d := ParseDuration(""); d != nil {
		t.Fatalf("esperava nil para string vazia, veio %v", *d)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	cases := []struct {
		in   string
		want models.PaymentStatus
	}{
		{"Fechado", models.SalePaid},
		{"Fiado - João", models.SalePending},
		{"Pagamento pendente", models.SalePending},
		{"Cancelado", models.SaleCancelled},
		{"CANCELADA", models.SaleCancelled},
		{"", models.SalePaid},
	}
	for _, tc := range cases {
		if got := ParsePaymentStatus(tc.in); got != tc.want {
			t.Fatalf("status %q: esperava %s, veio %s", tc.in, tc.want, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(0); got != "0m" {
		t.Fatalf("esperava 0m, veio %s", got)
	}
	if got := FormatDuration(45 * 60); got != "45m" {
		t.Fatalf("esperava 45m, veio %s", got)
	}
	if got := FormatDuration(2*3600 + 15*60); got != "2h 15m" {
		t.Fatalf("esperava 2h 15m, veio %s", got)
	}
}

func intPtr(n int) *int { return &n }

func order(opened time.Time, amount float64, items int, status models.PaymentStatus) models.SalesOrder {
	return models.SalesOrder{
		OpenedAt:      opened,
		Amount:        amount,
		ItemsCount:    items,
		PaymentStatus: status,
	}
}

func TestBuildStatsSummary(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	now := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC) // mês fechado

	orders := []models.SalesOrder{
		order(time.Date(2025, 6, 7, 20, 0, 0, 0, time.UTC), 100, 4, models.SalePaid),  // sábado
		order(time.Date(2025, 6, 7, 21, 0, 0, 0, time.UTC), 50, 2, models.SalePending),
		order(time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC), 30, 1, models.SalePaid), // segunda
	}

	stats := BuildStats(orders, start, end, now)

	if stats.Summary.TotalOrders != 3 {
		t.Fatalf("esperava 3 pedidos, veio %d", stats.Summary.TotalOrders)
	}
	if stats.Summary.TotalAmount != 180 {
		t.Fatalf("esperava total 180, veio %.2f", stats.Summary.TotalAmount)
	}
	if stats.Summary.AvgOrderValue != 60 {
		t.Fatalf("esperava ticket médio 60, veio %.2f", stats.Summary.AvgOrderValue)
	}
	if stats.Payment.PaidOrders != 2 || stats.Payment.PendingOrders != 1 {
		t.Fatalf("split de pagamento errado: %+v", stats.Payment)
	}
	if stats.Payment.PendingAmount != 50 {
		t.Fatalf("esperava 50 pendente, veio %.2f", stats.Payment.PendingAmount)
	}

	// sábado = índice 6, segunda = índice 1
	if stats.Distribution.ByWeekday.Orders[6] != 2 {
		t.Fatalf("esperava 2 pedidos no sábado, veio %d", stats.Distribution.ByWeekday.Orders[6])
	}
	if stats.Distribution.ByWeekday.Orders[1] != 1 {
		t.Fatalf("esperava 1 pedido na segunda, veio %d", stats.Distribution.ByWeekday.Orders[1])
	}
	if stats.Distribution.ByHour.Orders[20] != 1 {
		t.Fatalf("esperava 1 pedido às 20h, veio %d", stats.Distribution.ByHour.Orders[20])
	}

	// mês fechado: projeção = total do mês
	if stats.Period.CurrentDay != 30 {
		t.Fatalf("mês fechado deve usar todos os dias, veio %d", stats.Period.CurrentDay)
	}
	if stats.Summary.MonthProjection != stats.Summary.TotalAmount {
		t.Fatalf("projeção de mês fechado deve igualar o total: %.2f != %.2f",
			stats.Summary.MonthProjection, stats.Summary.TotalAmount)
	}
}

func TestBuildStatsOrderTypes(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	opened := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)

	counter := order(opened, 40, 1, models.SalePaid)
	counter.IsCounter = true
	delivery := order(opened, 60, 2, models.SalePaid)
	delivery.IsDelivery = true
	table := order(opened, 100, 3, models.SalePaid)
	table.TableNumber = intPtr(5)

	stats := BuildStats([]models.SalesOrder{counter, delivery, table}, start, end, opened)

	if stats.OrderTypes.Counter.Count != 1 || stats.OrderTypes.Counter.Amount != 40 {
		t.Fatalf("balcão errado: %+v", stats.OrderTypes.Counter)
	}
	if stats.OrderTypes.Delivery.Count != 1 || stats.OrderTypes.Delivery.Amount != 60 {
		t.Fatalf("delivery errado: %+v", stats.OrderTypes.Delivery)
	}
	if stats.OrderTypes.Table.Count != 1 || stats.OrderTypes.Table.Amount != 100 {
		t.Fatalf("mesa errado: %+v", stats.OrderTypes.Table)
	}
	if len(stats.TopTables) != 1 || stats.TopTables[0].Table != 5 {
		t.Fatalf("top mesas errado: %+v", stats.TopTables)
	}
}

func TestBuildStatsAvgDurationIgnoresMissing(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	opened := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)

	withDuration := order(opened, 40, 1, models.SalePaid)
	withDuration.Duration = intPtr(600)
	without := order(opened, 60, 2, models.SalePaid)

	stats := BuildStats([]models.SalesOrder{withDuration, without}, start, end, opened)

	if stats.Timing.AvgDuration != 600 {
		t.Fatalf("média deve ignorar pedidos sem duração: %.2f", stats.Timing.AvgDuration)
	}
	if stats.Timing.AvgDurationFormatted != "10m" {
		t.Fatalf("esperava 10m, veio %s", stats.Timing.AvgDurationFormatted)
	}
}

func TestBuildStatsTopTablesRanking(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	opened := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)

	var orders []models.SalesOrder
	for table := 1; table <= 7; table++ {
		o := order(opened, float64(table*10), 1, models.SalePaid)
		o.TableNumber = intPtr(table)
		orders = append(orders, o)
	}

	stats := BuildStats(orders, start, end, opened)

	if len(stats.TopTables) != 5 {
		t.Fatalf("top mesas deve ter no máximo 5, veio %d", len(stats.TopTables))
	}
	if stats.TopTables[0].Table != 7 || stats.TopTables[0].Amount != 70 {
		t.Fatalf("primeira mesa deveria ser a 7: %+v", stats.TopTables[0])
	}
	for i := 1; i < len(stats.TopTables); i++ {
		if stats.TopTables[i].Amount > stats.TopTables[i-1].Amount {
			t.Fatalf("ranking fora de ordem: %+v", stats.TopTables)
		}
	}
}

func TestBuildStatsTopTablesTieBreak(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	opened := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)

	var orders []models.SalesOrder
	for _, table := range []int{9, 2, 5} {
		o := order(opened, 50, 1, models.SalePaid)
		o.TableNumber = intPtr(table)
		orders = append(orders, o)
	}

	stats := BuildStats(orders, start, end, opened)

	// empate em valor: mesa de número menor vem primeiro
	want := []int{2, 5, 9}
	for i, w := range want {
		if stats.TopTables[i].Table != w {
			t.Fatalf("empate deveria ordenar pela mesa menor: %+v", stats.TopTables)
		}
	}
}

func TestBuildComparison(t *testing.T) {
	opened := time.Date(2025, 5, 10, 19, 0, 0, 0, time.UTC)
	previous := []models.SalesOrder{
		order(opened, 100, 2, models.SalePaid),
		order(opened, 100, 2, models.SalePaid),
	}
	current := SummaryStats{TotalOrders: 4, TotalAmount: 300}

	comp := BuildComparison(current, previous)

	if comp.TotalAmount != 200 || comp.TotalOrders != 2 {
		t.Fatalf("totais anteriores errados: %+v", comp)
	}
	if comp.AmountChange != 50 {
		t.Fatalf("esperava +50%%, veio %.2f", comp.AmountChange)
	}
	if comp.OrdersChange != 100 {
		t.Fatalf("esperava +100%%, veio %.2f", comp.OrdersChange)
	}
}

func TestBuildComparisonEmptyPrevious(t *testing.T) {
	comp := BuildComparison(SummaryStats{TotalOrders: 4, TotalAmount: 300}, nil)
	if comp.AmountChange != 0 || comp.OrdersChange != 0 {
		t.Fatalf("sem mês anterior a variação deve ser zero: %+v", comp)
	}
}
