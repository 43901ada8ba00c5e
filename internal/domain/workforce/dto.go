package workforce

type HeadcountPoint struct {
	Month      string `json:"month"` // Format: "YYYY-MM"
	Hired      int    `json:"hired"`
	Terminated int    `json:"terminated"`
	Headcount  int    `json:"headcount"`
	NetChange  int    `json:"net_change"`
}

type DepartmentTurnover struct {
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Terminations   int     `json:"terminations"`
	Active         int     `json:"active"`
	Rate           float64 `json:"rate"`
}

type TenureBandTurnover struct {
	Band       string  `json:"band"`
	Terminated int     `json:"terminated"`
	Active     int     `json:"active"`
	Rate       float64 `json:"rate"`
}

type TurnoverMetrics struct {
	PeriodMonths    int                  `json:"period_months"`
	PeriodStart     string               `json:"period_start"`
	PeriodEnd       string               `json:"period_end"`
	Terminations    int                  `json:"terminations"`
	ActiveHeadcount int                  `json:"active_headcount"`
	OverallRate     float64              `json:"overall_rate"`
	VoluntaryRate   float64              `json:"voluntary_rate"`
	InvoluntaryRate float64              `json:"involuntary_rate"`
	ByDepartment    []DepartmentTurnover `json:"by_department"`
	ByTenureBand    []TenureBandTurnover `json:"by_tenure_band"`
}

type DistributionItem struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Demographics struct {
	TotalActive   int                `json:"total_active"`
	AgeBands      []DistributionItem `json:"age_bands"`
	TenureBands   []DistributionItem `json:"tenure_bands"`
	ContractTypes []DistributionItem `json:"contract_types"`
	Genders       []DistributionItem `json:"genders"`
}

type AttritionTrend string

const (
	AttritionIncreasing AttritionTrend = "increasing"
	AttritionStable     AttritionTrend = "stable"
	AttritionDecreasing AttritionTrend = "decreasing"
)

type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

type AttritionProjection struct {
	Month                 string  `json:"month"`
	ProjectedTerminations float64 `json:"projected_terminations"`
	Confidence            int     `json:"confidence"`
}

type AttritionForecast struct {
	Trend                      AttritionTrend        `json:"trend"`
	RiskLevel                  RiskLevel             `json:"risk_level"`
	CurrentTurnoverRate        float64               `json:"current_turnover_rate"`
	AverageMonthlyTerminations float64               `json:"average_monthly_terminations"`
	Projections                []AttritionProjection `json:"projections"`
}

type EmployeeRiskTier string

const (
	TierHigh   EmployeeRiskTier = "HIGH"
	TierMedium EmployeeRiskTier = "MEDIUM"
	TierLow    EmployeeRiskTier = "LOW"
)

type EmployeeRisk struct {
	EmployeeID     string           `json:"employee_id"`
	FullName       string           `json:"full_name"`
	DepartmentName string           `json:"department_name,omitempty"`
	Status         string           `json:"status"`
	TenureMonths   int              `json:"tenure_months"`
	Score          int              `json:"score"`
	RiskLevel      EmployeeRiskTier `json:"risk_level"`
	Factors        []string         `json:"factors"`
}
