package talent

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/talent"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
)

const (
	lenientZ = 1.5
	severeZ  = -1.5

	lowPerformance    = 2.5
	mediumPerformance = 3.75
)

var bands = []talent.Band{talent.BandLow, talent.BandMedium, talent.BandHigh}

// nineBoxLabels is keyed by performance then potential.
var nineBoxLabels = map[talent.Band]map[talent.Band]string{
	talent.BandLow: {
		talent.BandLow:    "Underperformer",
		talent.BandMedium: "Inconsistent Player",
		talent.BandHigh:   "Rough Diamond",
	},
	talent.BandMedium: {
		talent.BandLow:    "Effective Performer",
		talent.BandMedium: "Core Player",
		talent.BandHigh:   "High Potential",
	},
	talent.BandHigh: {
		talent.BandLow:    "Trusted Professional",
		talent.BandMedium: "High Performer",
		talent.BandHigh:   "Star",
	},
}

type TalentServiceImpl struct {
	appraisalRepo performance.AppraisalRepository
	employeeRepo  employee.EmployeeRepository
}

func NewTalentService(appraisalRepo performance.AppraisalRepository, employeeRepo employee.EmployeeRepository) talent.TalentService {
	return &TalentServiceImpl{
		appraisalRepo: appraisalRepo,
		employeeRepo:  employeeRepo,
	}
}

// GetRaterBias implements talent.TalentService.
func (s *TalentServiceImpl) GetRaterBias(ctx context.Context) (*talent.RaterBiasReport, error) {
	appraisals, err := s.appraisalRepo.ListPublished(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list appraisals: %w", err)
	}
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}

	all := make([]float64, 0, len(appraisals))
	byRater := make(map[string][]float64)
	for _, a := range appraisals {
		all = append(all, a.Score)
		byRater[a.RaterID] = append(byRater[a.RaterID], a.Score)
	}

	mean := utils.Mean(all)
	stddev := utils.StdDev(all)

	report := &talent.RaterBiasReport{
		PopulationMean:   utils.Round2(mean),
		PopulationStdDev: utils.Round2(stddev),
		TotalReviews:     len(all),
		Raters:           make([]talent.RaterBias, 0, len(byRater)),
	}
	for raterID, scores := range byRater {
		avg := utils.Mean(scores)
		var z float64
		if stddev > 0 {
			z = (avg - mean) / stddev
		}
		report.Raters = append(report.Raters, talent.RaterBias{
			RaterID:      raterID,
			RaterName:    names[raterID],
			ReviewCount:  len(scores),
			AverageScore: utils.Round2(avg),
			ZScore:       utils.Round2(z),
			Tendency:     tendency(z),
		})
	}
	sort.Slice(report.Raters, func(i, j int) bool {
		if report.Raters[i].ZScore != report.Raters[j].ZScore {
			return report.Raters[i].ZScore > report.Raters[j].ZScore
		}
		return report.Raters[i].RaterID < report.Raters[j].RaterID
	})
	return report, nil
}

func tendency(z float64) talent.Tendency {
	switch {
	case z > lenientZ:
		return talent.TendencyLenient
	case z < severeZ:
		return talent.TendencySevere
	default:
		return talent.TendencyNeutral
	}
}

func performanceBand(score float64) talent.Band {
	switch {
	case score < lowPerformance:
		return talent.BandLow
	case score < mediumPerformance:
		return talent.BandMedium
	default:
		return talent.BandHigh
	}
}

func potentialBand(p *performance.PotentialRating) talent.Band {
	if p == nil {
		return talent.BandMedium
	}
	switch *p {
	case performance.PotentialLow:
		return talent.BandLow
	case performance.PotentialHigh:
		return talent.BandHigh
	default:
		return talent.BandMedium
	}
}

// GetNineBox implements talent.TalentService.
// Cells are ordered by potential descending, then performance ascending.
func (s *TalentServiceImpl) GetNineBox(ctx context.Context) (*talent.NineBox, error) {
	appraisals, err := s.appraisalRepo.ListPublished(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list appraisals: %w", err)
	}

	type key struct{ perf, pot talent.Band }
	members := make(map[key][]string)
	latest := performance.LatestByEmployee(appraisals)
	for empID, a := range latest {
		k := key{performanceBand(a.Score), potentialBand(a.Potential)}
		members[k] = append(members[k], empID)
	}

	box := &talent.NineBox{
		TotalAssessed: len(latest),
		Cells:         make([]talent.NineBoxCell, 0, len(bands)*len(bands)),
	}
	for i := len(bands) - 1; i >= 0; i-- {
		pot := bands[i]
		for _, perf := range bands {
			ids := members[key{perf, pot}]
			sort.Strings(ids)
			if ids == nil {
				ids = []string{}
			}
			box.Cells = append(box.Cells, talent.NineBoxCell{
				Performance: perf,
				Potential:   pot,
				Label:       nineBoxLabels[perf][pot],
				Count:       len(ids),
				EmployeeIDs: ids,
			})
		}
	}
	return box, nil
}
