package models

type MonthlySummary struct {
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	TotalIncome       float64 `json:"total_income"`
	TotalExpense      float64 `json:"total_expense"`
	NetAmount         float64 `json:"net_amount"`
	TransactionsCount int     `json:"transactions_count"`
}

type CategorySummary struct {
	Category          TransactionCategory `json:"category"`
	Type              TransactionType     `json:"type"`
	TotalAmount       float64             `json:"total_amount"`
	TransactionsCount int                 `json:"transactions_count"`
}

type DailyTrend struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "daily"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
)

type TrendPoint struct {
	Date     string   `json:"date"`
	Income   float64  `json:"income"`
	Expense  float64  `json:"expense"`
	Net      float64  `json:"net"`
	Currency Currency `json:"currency"`
}

type SpendingTrends struct {
	Period TrendPeriod  `json:"period"`
	Days   int          `json:"days"`
	Data   []TrendPoint `json:"data"`
}

type CategoryBreakdown struct {
	Category          TransactionCategory `json:"category"`
	Type              TransactionType     `json:"type"`
	Currency          Currency            `json:"currency"`
	TotalAmount       float64             `json:"total_amount"`
	Percentage        float64             `json:"percentage"`
	TransactionsCount int                 `json:"transactions_count"`
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

type CategorySpend struct {
	Category TransactionCategory `json:"category"`
	Amount   float64             `json:"amount"`
	Currency Currency            `json:"currency"`
}

type ExpenseDay struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type FinancialInsights struct {
	Days                  int                  `json:"days"`
	TotalIncome           map[Currency]float64 `json:"total_income"`
	TotalExpense          map[Currency]float64 `json:"total_expense"`
	NetAmount             map[Currency]float64 `json:"net_amount"`
	TopSpendingCategories []CategorySpend      `json:"top_spending_categories"`
	SpendingTrend         TrendDirection       `json:"spending_trend"`
	AverageDailyExpense   map[Currency]float64 `json:"average_daily_expense"`
	HighestExpenseDay     *ExpenseDay          `json:"highest_expense_day"`
	SavingsRate           float64              `json:"savings_rate"`
	ReferenceCurrency     Currency             `json:"reference_currency"`
}
