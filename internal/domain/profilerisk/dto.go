package profilerisk

type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
)

type ChangeRequestRiskRequest struct {
	Changes       map[string]any `json:"changes"`
	Justification string         `json:"justification"`
}

type ChangeRequestRisk struct {
	Score         int      `json:"score"`
	Level         Level    `json:"level"`
	ChangedFields []string `json:"changed_fields"`
	Factors       []string `json:"factors"`
}

type RetentionRisk struct {
	EmployeeID   string   `json:"employee_id"`
	TenureMonths int      `json:"tenure_months"`
	Score        int      `json:"score"`
	Level        Level    `json:"level"`
	Factors      []string `json:"factors"`
}

type DeactivationImpact struct {
	EmployeeID               string  `json:"employee_id"`
	PositionTitle            string  `json:"position_title,omitempty"`
	TenureYears              float64 `json:"tenure_years"`
	EstimatedReplacementDays int     `json:"estimated_replacement_days"`
	ReplacementTime          string  `json:"replacement_time"`
	CapacityLossPercent      int     `json:"capacity_loss_percent"`
	KnowledgeLossRisk        Level   `json:"knowledge_loss_risk"`
	OrphanedDirectReports    int     `json:"orphaned_direct_reports"`
	Summary                  string  `json:"summary"`
}

type ProfileHealthStatus string

const (
	ProfileHealthy        ProfileHealthStatus = "HEALTHY"
	ProfileNeedsAttention ProfileHealthStatus = "NEEDS_ATTENTION"
)

type ProfileHealth struct {
	EmployeeID            string              `json:"employee_id"`
	CompletenessScore     int                 `json:"completeness_score"`
	MissingCriticalFields []string            `json:"missing_critical_fields"`
	DataQualityIssues     []string            `json:"data_quality_issues"`
	Status                ProfileHealthStatus `json:"status"`
}
