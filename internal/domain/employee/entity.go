package employee

import "time"

type Employee struct {
	ID                string
	EmployeeCode      string
	FullName          string
	Email             string
	Phone             string
	NationalID        string
	BankAccountNumber string
	Address           string
	EmergencyContact  string
	DepartmentID      *string
	PositionID        *string
	HireDate          time.Time
	Status            Status
	BirthDate         *time.Time
	Gender            Gender
	ContractType      ContractType
	Skills            []string
}

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusProbation  Status = "PROBATION"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusTerminated Status = "TERMINATED"
	StatusRetired    Status = "RETIRED"
)

// IsActive reports whether the employee still counts towards headcount.
func (s Status) IsActive() bool {
	return s == StatusActive || s == StatusProbation || s == StatusOnLeave
}

// IsTerminal reports whether the status ends employment.
func (s Status) IsTerminal() bool {
	return s == StatusTerminated || s == StatusRetired
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type ContractType string

const (
	ContractPermanent  ContractType = "PERMANENT"
	ContractFixedTerm  ContractType = "CONTRACT"
	ContractProbation  ContractType = "PROBATION"
	ContractInternship ContractType = "INTERNSHIP"
	ContractFreelance  ContractType = "FREELANCE"
)

// TenureMonths returns whole months between hire date and asOf.
func (e Employee) TenureMonths(asOf time.Time) int {
	return MonthsBetween(e.HireDate, asOf)
}

// TenureYears returns fractional years between hire date and asOf.
func (e Employee) TenureYears(asOf time.Time) float64 {
	if asOf.Before(e.HireDate) {
		return 0
	}
	return asOf.Sub(e.HireDate).Hours() / 24 / 365.25
}

// AgeAt returns the employee's age in whole years, or -1 when the birth date is unknown.
func (e Employee) AgeAt(asOf time.Time) int {
	if e.BirthDate == nil {
		return -1
	}
	b := *e.BirthDate
	age := asOf.Year() - b.Year()
	if asOf.Month() < b.Month() || (asOf.Month() == b.Month() && asOf.Day() < b.Day()) {
		age--
	}
	return age
}

// MonthsBetween counts whole calendar months from start to end, 0 if end precedes start.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AuditAction is the kind of audit-log entry recorded by the employee module.
type AuditAction string

const (
	AuditStatusChange AuditAction = "STATUS_CHANGE"
	AuditTerminate    AuditAction = "TERMINATE"
	AuditDeactivate   AuditAction = "DEACTIVATE"
)

// AuditEntry is a status-related audit-log row with its after-snapshot status.
type AuditEntry struct {
	ID          string
	EmployeeID  string
	Action      AuditAction
	AfterStatus Status
	OccurredAt  time.Time
}

// TerminationEvent marks the moment an employee left the organisation.
type TerminationEvent struct {
	EmployeeID    string
	Status        Status
	EffectiveDate time.Time
}

// TerminationFromAudit converts an audit entry into a termination event when the
// entry records a move into a terminal status.
func TerminationFromAudit(entry AuditEntry) (TerminationEvent, bool) {
	switch entry.Action {
	case AuditStatusChange, AuditTerminate, AuditDeactivate:
	default:
		return TerminationEvent{}, false
	}
	if !entry.AfterStatus.IsTerminal() {
		return TerminationEvent{}, false
	}
	return TerminationEvent{
		EmployeeID:    entry.EmployeeID,
		Status:        entry.AfterStatus,
		EffectiveDate: entry.OccurredAt,
	}, true
}

// CurrentTerminations keeps, per employee, the earliest termination that ends the
// current employment. Events dated before the latest hire date belong to an earlier
// stint and are ignored, so a rehired employee counts as employed again.
func CurrentTerminations(employees []Employee, events []TerminationEvent) map[string]TerminationEvent {
	hired := make(map[string]time.Time, len(employees))
	for _, e := range employees {
		hired[e.ID] = e.HireDate
	}
	out := make(map[string]TerminationEvent, len(events))
	for _, ev := range events {
		hireDate, ok := hired[ev.EmployeeID]
		if !ok || ev.EffectiveDate.Before(hireDate) {
			continue
		}
		if cur, ok := out[ev.EmployeeID]; !ok || ev.EffectiveDate.Before(cur.EffectiveDate) {
			out[ev.EmployeeID] = ev
		}
	}
	return out
}

// TenureBands are the fixed reporting bands, shortest first.
var TenureBands = []string{"<1y", "1-2y", "2-5y", "5-10y", "10y+"}

// TenureBand maps tenure in years to one of TenureBands.
func TenureBand(years float64) string {
	switch {
	case years < 1:
		return TenureBands[0]
	case years < 2:
		return TenureBands[1]
	case years < 5:
		return TenureBands[2]
	case years < 10:
		return TenureBands[3]
	default:
		return TenureBands[4]
	}
}
