package orgstructure

type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
)

// Rank orders levels for sorting, higher is more severe.
func (l Level) Rank() int {
	switch l {
	case LevelCritical:
		return 4
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

type InsightSeverity string

const (
	InsightCritical InsightSeverity = "CRITICAL"
	InsightWarning  InsightSeverity = "WARNING"
	InsightInfo     InsightSeverity = "INFO"
)

type Insight struct {
	Severity InsightSeverity `json:"severity"`
	Message  string          `json:"message"`
}

type Bucket struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ========== STRUCTURAL HEALTH ==========

type StructuralHealth struct {
	TotalPositions      int       `json:"total_positions"`
	FilledPositions     int       `json:"filled_positions"`
	VacantPositions     int       `json:"vacant_positions"`
	FillRate            float64   `json:"fill_rate"`
	ManagementPositions int       `json:"management_positions"`
	ManagementRatio     float64   `json:"management_ratio"`
	AverageSpan         float64   `json:"average_span_of_control"`
	SpanDistribution    []Bucket  `json:"span_distribution"`
	TenureDistribution  []Bucket  `json:"tenure_distribution"`
	Insights            []Insight `json:"insights"`
}

// ========== DEPARTMENTS ==========

type DepartmentAnalytics struct {
	DepartmentID           string  `json:"department_id"`
	DepartmentName         string  `json:"department_name"`
	TotalPositions         int     `json:"total_positions"`
	FilledPositions        int     `json:"filled_positions"`
	FillRate               float64 `json:"fill_rate"`
	Headcount              int     `json:"headcount"`
	AverageTenureYears     float64 `json:"average_tenure_years"`
	ManagementPositions    int     `json:"management_positions"`
	IndividualContributors int     `json:"individual_contributors"`
}

// ========== POSITION RISK ==========

type SuccessionStatus string

const (
	SuccessionCovered SuccessionStatus = "COVERED"
	SuccessionAtRisk  SuccessionStatus = "AT_RISK"
	SuccessionNoPlan  SuccessionStatus = "NO_PLAN"
)

type PositionRisk struct {
	PositionID       string           `json:"position_id"`
	Title            string           `json:"title"`
	DepartmentName   string           `json:"department_name"`
	HolderID         string           `json:"holder_id,omitempty"`
	HolderName       string           `json:"holder_name,omitempty"`
	DirectReports    int              `json:"direct_reports"`
	ImpactLevel      Level            `json:"impact_level"`
	VacancyRisk      Level            `json:"vacancy_risk"`
	SuccessionStatus SuccessionStatus `json:"succession_status"`
	Facts            []string         `json:"facts"`
}

// ========== CHANGE SIMULATION ==========

type ActionType string

const (
	ActionDeactivatePosition   ActionType = "DEACTIVATE_POSITION"
	ActionDeactivateDepartment ActionType = "DEACTIVATE_DEPARTMENT"
)

type SimulateChangeRequest struct {
	ActionType ActionType `json:"action_type"`
	TargetID   string     `json:"target_id"`
}

type ChangeImpact struct {
	ActionType        ActionType `json:"action_type"`
	TargetID          string     `json:"target_id"`
	TargetName        string     `json:"target_name,omitempty"`
	AffectedPositions int        `json:"affected_positions"`
	AffectedEmployees int        `json:"affected_employees"`
	DownstreamEffects []string   `json:"downstream_effects"`
	ImpactLevel       Level      `json:"impact_level"`
	Recommendation    string     `json:"recommendation"`
}

// ========== ADDITIONAL VIEWS ==========

type CostCenterRollup struct {
	CostCenter      string  `json:"cost_center"`
	Departments     int     `json:"departments"`
	TotalPositions  int     `json:"total_positions"`
	FilledPositions int     `json:"filled_positions"`
	FillRate        float64 `json:"fill_rate"`
	Headcount       int     `json:"headcount"`
}

type SpanClassification string

const (
	SpanNarrow  SpanClassification = "NARROW"
	SpanOptimal SpanClassification = "OPTIMAL"
	SpanWide    SpanClassification = "WIDE"
)

type SpanOfControlEntry struct {
	PositionID          string             `json:"position_id"`
	Title               string             `json:"title"`
	DepartmentName      string             `json:"department_name"`
	HolderName          string             `json:"holder_name,omitempty"`
	DirectReports       int                `json:"direct_reports"`
	FilledDirectReports int                `json:"filled_direct_reports"`
	Classification      SpanClassification `json:"classification"`
}

type VacancyForecast struct {
	PositionID  string  `json:"position_id"`
	Title       string  `json:"title"`
	HolderID    string  `json:"holder_id"`
	HolderName  string  `json:"holder_name"`
	TenureYears float64 `json:"tenure_years"`
	Likelihood  float64 `json:"likelihood"`
	RiskLevel   Level   `json:"risk_level"`
	Timeframe   string  `json:"timeframe"`
}

type OrgSummary struct {
	TotalDepartments  int     `json:"total_departments"`
	ActiveDepartments int     `json:"active_departments"`
	TotalPositions    int     `json:"total_positions"`
	FilledPositions   int     `json:"filled_positions"`
	VacantPositions   int     `json:"vacant_positions"`
	FillRate          float64 `json:"fill_rate"`
	AssignedEmployees int     `json:"assigned_employees"`
}
