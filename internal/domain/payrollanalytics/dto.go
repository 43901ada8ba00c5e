package payrollanalytics

import "github.com/shopspring/decimal"

type Trend string

const (
	TrendRising  Trend = "RISING"
	TrendFalling Trend = "FALLING"
	TrendStable  Trend = "STABLE"
)

// PayrollStory narrates the movement between the two latest approved runs.
type PayrollStory struct {
	Trend            Trend           `json:"trend"`
	ChangePercentage float64         `json:"change_percentage"`
	Headline         string          `json:"headline"`
	Narrative        string          `json:"narrative"`
	InsufficientData bool            `json:"insufficient_data"`
	CurrentRunID     string          `json:"current_run_id,omitempty"`
	PreviousRunID    string          `json:"previous_run_id,omitempty"`
	CurrentTotal     decimal.Decimal `json:"current_total"`
	PreviousTotal    decimal.Decimal `json:"previous_total"`
	Difference       decimal.Decimal `json:"difference"`
	HeadcountChange  int             `json:"headcount_change"`
	ExceptionCount   int             `json:"exception_count"`
}

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

const AnomalyGhostEmployee = "GHOST_EMPLOYEE"

type Anomaly struct {
	Type         string          `json:"type"`
	Severity     Severity        `json:"severity"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	PayslipID    string          `json:"payslip_id"`
	NetPay       decimal.Decimal `json:"net_pay"`
	Description  string          `json:"description"`
}

type GhostEmployeeReport struct {
	RunID           string    `json:"run_id"`
	PeriodStart     string    `json:"period_start"`
	PeriodEnd       string    `json:"period_end"`
	ScannedPayslips int       `json:"scanned_payslips"`
	Anomalies       []Anomaly `json:"anomalies"`
}

type Forecast struct {
	NextMonthPrediction float64 `json:"next_month_prediction"`
	Confidence          float64 `json:"confidence"`
	Slope               float64 `json:"slope"`
	DataPoints          int     `json:"data_points"`
	Method              string  `json:"method"`
}
