package talent

type Tendency string

const (
	TendencyLenient Tendency = "LENIENT"
	TendencySevere  Tendency = "SEVERE"
	TendencyNeutral Tendency = "NEUTRAL"
)

type RaterBias struct {
	RaterID      string   `json:"rater_id"`
	RaterName    string   `json:"rater_name,omitempty"`
	ReviewCount  int      `json:"review_count"`
	AverageScore float64  `json:"average_score"`
	ZScore       float64  `json:"z_score"`
	Tendency     Tendency `json:"tendency"`
}

type RaterBiasReport struct {
	PopulationMean   float64     `json:"population_mean"`
	PopulationStdDev float64     `json:"population_std_dev"`
	TotalReviews     int         `json:"total_reviews"`
	Raters           []RaterBias `json:"raters"`
}

type Band string

const (
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

type NineBoxCell struct {
	Performance Band     `json:"performance"`
	Potential   Band     `json:"potential"`
	Label       string   `json:"label"`
	Count       int      `json:"count"`
	EmployeeIDs []string `json:"employee_ids"`
}

type NineBox struct {
	TotalAssessed int           `json:"total_assessed"`
	Cells         []NineBoxCell `json:"cells"`
}
