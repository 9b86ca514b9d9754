package reports

import (
	"time"

	"pizzaria-backend/internal/database"
	"pizzaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type SourceTotal struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
}

type MonthlyReportResponse struct {
	Month string `json:"month"`

	ManualRevenue    float64       `json:"manual_revenue"`
	SalesRevenue     float64       `json:"sales_revenue"` // vendas do PDV (PAID)
	TotalRevenue     float64       `json:"total_revenue"`
	RevenuesBySource []SourceTotal `json:"revenues_by_source"`

	TotalExpenses      float64         `json:"total_expenses"`
	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`

	PayrollPeriods float64 `json:"payroll_periods"` // fechamentos no mês
	PaidAdvances   float64 `json:"paid_advances"`
	TotalPayroll   float64 `json:"total_payroll"`

	NetResult float64 `json:"net_result"`
}

// GET /api/reports/monthly?month=2025-06
// Visão consolidada do mês: receitas (manuais + PDV), despesas por
// categoria, custo de pessoal e resultado.
func MonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}
		monthStart, err := time.Parse("2006-01", month)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month deve estar no formato 'YYYY-MM'")
		}
		monthEnd := monthStart.AddDate(0, 1, 0)

		var report MonthlyReportResponse
		report.Month = month

		// Receitas manuais agrupadas por origem
		if err := database.DB.Model(&models.Revenue{}).
			Select("source, SUM(amount) as total").
			Where("date >= ? AND date < ?", monthStart, monthEnd).
			Group("source").
			Order("total desc").
			Scan(&report.RevenuesBySource).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível somar as receitas")
		}
		for _, r := range report.RevenuesBySource {
			report.ManualRevenue += r.Total
		}

		// Vendas do PDV efetivamente pagas
		if err := database.DB.Model(&models.SalesOrder{}).
			Where("opened_at >= ? AND opened_at < ? AND payment_status = ?",
				monthStart, monthEnd, models.SalePaid).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&report.SalesRevenue).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível somar as vendas")
		}

		report.TotalRevenue = report.ManualRevenue + report.SalesRevenue

		// Despesas por categoria
		if err := database.DB.Model(&models.Expense{}).
			Select("category, SUM(amount) as total").
			Where("date >= ? AND date < ?", monthStart, monthEnd).
			Group("category").
			Order("total desc").
			Scan(&report.ExpensesByCategory).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível somar as despesas")
		}
		for _, e := range report.ExpensesByCategory {
			report.TotalExpenses += e.Total
		}

		// Custo de pessoal: fechamentos criados no mês mais adiantamentos
		// que ainda estão PAID (os descontados já entraram no fechamento)
		if err := database.DB.Model(&models.PayrollPeriod{}).
			Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&report.PayrollPeriods).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível somar os fechamentos")
		}

		if err := database.DB.Model(&models.Advance{}).
			Where("status = ? AND payment_date >= ? AND payment_date < ?",
				models.AdvancePaid, monthStart, monthEnd).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&report.PaidAdvances).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível somar os adiantamentos")
		}

		report.TotalPayroll = report.PayrollPeriods + report.PaidAdvances
		report.NetResult = report.TotalRevenue - report.TotalExpenses - report.TotalPayroll

		if report.RevenuesBySource == nil {
			report.RevenuesBySource = []SourceTotal{}
		}
		if report.ExpensesByCategory == nil {
			report.ExpensesByCategory = []CategoryTotal{}
		}

		return c.JSON(report)
	}
}
