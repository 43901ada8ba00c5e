package dashboard

// ========== SHARED BUILDING BLOCKS ==========

type HealthStatus string

const (
	HealthExcellent HealthStatus = "EXCELLENT"
	HealthGood      HealthStatus = "GOOD"
	HealthFair      HealthStatus = "FAIR"
	HealthPoor      HealthStatus = "POOR"
)

// HealthComponent is one weighted input to a dashboard health score
type HealthComponent struct {
	Name   string       `json:"name"`
	Score  float64      `json:"score"` // 0-100
	Status HealthStatus `json:"status"`
	Weight float64      `json:"weight"`
}

type HealthScore struct {
	Overall    float64           `json:"overall"`
	Status     HealthStatus      `json:"status"`
	Components []HealthComponent `json:"components"`
}

type StoryTrend string

const (
	StoryUp   StoryTrend = "UP"
	StoryDown StoryTrend = "DOWN"
	StoryFlat StoryTrend = "FLAT"
)

type StoryMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// StoryCard is an auto-generated narrative card shown above the charts
type StoryCard struct {
	Headline  string      `json:"headline"`
	Trend     StoryTrend  `json:"trend"`
	Arrow     string      `json:"arrow"`
	Narrative string      `json:"narrative"`
	Metric    StoryMetric `json:"metric"`
}

type Breakdown struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Requests int     `json:"requests"`
	Days     float64 `json:"days"`
}

// ========== LEAVES DASHBOARD ==========

type LeavesDashboard struct {
	Year         int                   `json:"year"`
	GeneratedAt  string                `json:"generated_at"`
	Overview     LeaveOverview         `json:"overview"`
	Balances     []LeaveBalanceSummary `json:"balances"`
	RequestTrend []LeaveTrendPoint     `json:"request_trend"`
	ByDepartment []Breakdown           `json:"by_department"`
	ByType       []Breakdown           `json:"by_type"`
	Seasonal     []SeasonalPoint       `json:"seasonal_pattern"`
	Workflow     WorkflowEfficiency    `json:"workflow"`
	Health       HealthScore           `json:"health"`
	Stories      []StoryCard           `json:"stories"`
	// DegradedSources names the sources that failed and rendered empty.
	DegradedSources []string `json:"degraded_sources,omitempty"`
}

// Partial reports whether any source failed during the build.
func (d *LeavesDashboard) Partial() bool { return len(d.DegradedSources) > 0 }

type LeaveOverview struct {
	TotalRequests  int     `json:"total_requests"`
	Pending        int     `json:"pending"`
	Approved       int     `json:"approved"`
	Rejected       int     `json:"rejected"`
	Cancelled      int     `json:"cancelled"`
	ApprovedDays   float64 `json:"approved_days"`
	OnLeaveToday   int     `json:"on_leave_today"`
	ApprovalRate   float64 `json:"approval_rate"`
	EmployeesTotal int     `json:"employees_total"`
}

type LeaveBalanceSummary struct {
	LeaveTypeID      string  `json:"leave_type_id"`
	LeaveTypeName    string  `json:"leave_type_name"`
	Employees        int     `json:"employees"`
	TotalEntitlement float64 `json:"total_entitlement"`
	TotalAccrued     float64 `json:"total_accrued"`
	TotalTaken       float64 `json:"total_taken"`
	TotalRemaining   float64 `json:"total_remaining"`
	UtilizationRate  float64 `json:"utilization_rate"`
}

type LeaveTrendPoint struct {
	Month    string  `json:"month"` // Format: "YYYY-MM"
	Requests int     `json:"requests"`
	Approved int     `json:"approved"`
	Days     float64 `json:"days"`
}

type SeasonalPoint struct {
	Label    string  `json:"label"`
	Requests int     `json:"requests"`
	Days     float64 `json:"days"`
}

type WorkflowEfficiency struct {
	Decided              int     `json:"decided"`
	AverageDecisionHours float64 `json:"average_decision_hours"`
	PendingOverSevenDays int     `json:"pending_over_seven_days"`
	ApprovalRate         float64 `json:"approval_rate"`
	RejectionRate        float64 `json:"rejection_rate"`
}

// ========== TIME MANAGEMENT DASHBOARD ==========

type TimeManagementDashboard struct {
	Month        string                 `json:"month"` // Format: "YYYY-MM"
	GeneratedAt  string                 `json:"generated_at"`
	Overview     TimeOverview           `json:"overview"`
	DailyTrend   []DailyAttendancePoint `json:"daily_trend"`
	ByDepartment []DepartmentAttendance `json:"by_department"`
	Weekday      []WeekdayPoint         `json:"weekday_pattern"`
	Exceptions   TimeExceptions         `json:"exceptions"`
	Health       HealthScore            `json:"health"`
	Stories      []StoryCard            `json:"stories"`

	DegradedSources []string `json:"degraded_sources,omitempty"`
}

func (d *TimeManagementDashboard) Partial() bool { return len(d.DegradedSources) > 0 }

type TimeOverview struct {
	TotalRecords       int     `json:"total_records"`
	Present            int     `json:"present"`
	OnTime             int     `json:"on_time"`
	Late               int     `json:"late"`
	Absent             int     `json:"absent"`
	OnLeave            int     `json:"on_leave"`
	PunctualityRate    float64 `json:"punctuality_rate"`
	AbsenteeismRate    float64 `json:"absenteeism_rate"`
	OvertimeHours      float64 `json:"overtime_hours"`
	AverageWorkedHours float64 `json:"average_worked_hours"`
}

type DailyAttendancePoint struct {
	Date   string `json:"date"` // Format: "YYYY-MM-DD"
	OnTime int    `json:"on_time"`
	Late   int    `json:"late"`
	Absent int    `json:"absent"`
}

type DepartmentAttendance struct {
	DepartmentID    string  `json:"department_id"`
	DepartmentName  string  `json:"department_name"`
	Records         int     `json:"records"`
	Late            int     `json:"late"`
	Absent          int     `json:"absent"`
	PunctualityRate float64 `json:"punctuality_rate"`
	OvertimeHours   float64 `json:"overtime_hours"`
}

type WeekdayPoint struct {
	Weekday string `json:"weekday"`
	Records int    `json:"records"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
}

type TimeExceptions struct {
	MissedClockOuts      int     `json:"missed_clock_outs"`
	TotalLateMinutes     int     `json:"total_late_minutes"`
	AverageLateMinutes   float64 `json:"average_late_minutes"`
	HeavyOvertimeRecords int     `json:"heavy_overtime_records"` // > 2h overtime in a day
}
