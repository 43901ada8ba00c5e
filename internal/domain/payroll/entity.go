package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type RunStatus string

const (
	RunStatusDraft     RunStatus = "DRAFT"
	RunStatusReview    RunStatus = "UNDER_REVIEW"
	RunStatusApproved  RunStatus = "APPROVED"
	RunStatusPaid      RunStatus = "PAID"
	RunStatusCancelled RunStatus = "CANCELLED"
)

type Run struct {
	ID             string
	EntityID       *string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Status         RunStatus
	TotalNetPay    decimal.Decimal
	EmployeeCount  int
	ExceptionCount int
	ApprovedAt     *time.Time
}

type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type Payslip struct {
	ID              string
	RunID           string
	EmployeeID      string
	EmployeeName    string
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Earnings        []LineItem
	Deductions      []LineItem
}
