// Package reports renders a user's monthly statement as a PDF.
package reports

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/UmangSachdeva/BudgetX/models"
)

const maxRows = 500

type Statement struct {
	Username     string
	Month        string
	Transactions []models.Transaction
	Budgets      []models.BudgetResponse
	GeneratedAt  time.Time
}

// Totals is the income/expense/net of one currency in a statement.
type Totals struct {
	Currency models.Currency
	Income   float64
	Expense  float64
	Net      float64
}

// CurrencyTotals sums the statement per currency, ordered by currency code.
func (s Statement) CurrencyTotals() []Totals {
	type sums struct{ income, expense models.Accumulator }
	by := make(map[models.Currency]*sums)
	for _, t := range s.Transactions {
		if by[t.Currency] == nil {
			by[t.Currency] = &sums{}
		}
		if t.Type == models.Income {
			by[t.Currency].income.Add(t.Amount)
		} else {
			by[t.Currency].expense.Add(t.Amount)
		}
	}
	out := make([]Totals, 0, len(by))
	for cur, v := range by {
		in, ex := v.income.Value(), v.expense.Value()
		out = append(out, Totals{Currency: cur, Income: in, Expense: ex, Net: models.Sum(in, -ex)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

func Filename(month string) string {
	return "budgetx-statement-" + month + ".pdf"
}

// Write renders s to w.
func Write(w io.Writer, s Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BudgetX Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Month: "+s.Month)
	pdf.Ln(5)
	pdf.Cell(0, 6, "User: "+s.Username)
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)

	sumW := []float64{30, 52, 52, 48}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"Currency", "Income", "Expense", "Net"} {
		pdf.CellFormat(sumW[i], 9, h, "1", ln(i, len(sumW)), "C", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 11)
	totals := s.CurrencyTotals()
	if len(totals) == 0 {
		pdf.CellFormat(0, 9, "No transactions this month", "1", 1, "C", false, 0, "")
	}
	for _, t := range totals {
		pdf.CellFormat(sumW[0], 9, string(t.Currency), "1", 0, "C", false, 0, "")
		pdf.CellFormat(sumW[1], 9, money(t.Income), "1", 0, "R", false, 0, "")
		pdf.CellFormat(sumW[2], 9, money(t.Expense), "1", 0, "R", false, 0, "")
		pdf.CellFormat(sumW[3], 9, money(t.Net), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	if len(s.Budgets) > 0 {
		budgetW := []float64{46, 30, 34, 34, 38}
		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range []string{"BUDGET", "CURRENCY", "LIMIT", "SPENT", "STATUS"} {
			pdf.CellFormat(budgetW[i], 8, h, "1", ln(i, len(budgetW)), "C", true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
		for _, b := range s.Budgets {
			pdf.CellFormat(budgetW[0], 8, label(string(b.Category)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(budgetW[1], 8, string(b.Currency), "1", 0, "C", false, 0, "")
			pdf.CellFormat(budgetW[2], 8, money(b.BudgetAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(budgetW[3], 8, money(b.SpentAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(budgetW[4], 8, fmt.Sprintf("%s (%.0f%%)", label(string(b.Status)), b.PercentageUsed), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	}

	colW := []float64{24, 20, 40, 70, 28}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		for i, h := range []string{"DATE", "TYPE", "CATEGORY", "DESCRIPTION", "AMOUNT"} {
			align := "C"
			if i == 3 {
				align = "L"
			}
			pdf.CellFormat(colW[i], 8, h, "1", ln(i, len(colW)), align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	for i, t := range s.Transactions {
		if i >= maxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "... truncated (too many rows)", "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}
		amount := money(t.Amount) + " " + string(t.Currency)
		if t.Type == models.Expense {
			amount = "-" + amount
		}
		pdf.CellFormat(colW[0], 8, t.Date.UTC().Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, strings.ToUpper(string(t.Type)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, label(string(t.Category)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, trimTo(t.Description, 42), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 8, amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by BudgetX - "+s.GeneratedAt.UTC().Format(time.RFC3339), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render statement: %w", err)
	}
	return nil
}

// ln moves to the next line after the last cell of a row.
func ln(i, n int) int {
	if i == n-1 {
		return 1
	}
	return 0
}

func label(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := fmt.Sprintf("%.2f", v)
	intPart, frac := whole[:len(whole)-3], whole[len(whole)-3:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
