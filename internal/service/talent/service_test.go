package talent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/talent"
	"github.com/cmlabs-hris/workforce-analytics/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var published = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func potential(p performance.PotentialRating) *performance.PotentialRating { return &p }

func newService(appraisals []performance.Appraisal, employees ...employee.Employee) talent.TalentService {
	ds := &memory.Dataset{}
	ds.Update(func(d *memory.Dataset) {
		d.Appraisals = appraisals
		d.Employees = employees
	})
	return NewTalentService(memory.NewAppraisalRepository(ds), memory.NewEmployeeRepository(ds))
}

func review(emp, rater string, score float64) performance.Appraisal {
	return performance.Appraisal{
		ID: emp + "-" + rater, EmployeeID: emp, RaterID: rater, Score: score,
		Status: performance.StatusPublished, PublishedAt: published,
	}
}

func TestGetRaterBias(t *testing.T) {
	var appraisals []performance.Appraisal
	add := func(rater string, scores ...float64) {
		for i, s := range scores {
			appraisals = append(appraisals, review(fmt.Sprintf("%s-e%d", rater, i), rater, s))
		}
	}
	add("r-easy", 5, 5)
	add("r-hard", 1, 1)
	add("r2", 3, 3)
	add("r3", 3, 3)
	add("r4", 3, 3)
	add("r5", 3, 3)
	appraisals = append(appraisals, performance.Appraisal{ID: "draft", RaterID: "r-hard", Score: 5, Status: performance.StatusDraft, PublishedAt: published})

	svc := newService(appraisals, employee.Employee{ID: "r-easy", FullName: "Easy Rater"})

	report, err := svc.GetRaterBias(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, report.TotalReviews)
	assert.Equal(t, 3.0, report.PopulationMean)
	assert.Equal(t, 1.15, report.PopulationStdDev)
	require.Len(t, report.Raters, 6)

	first := report.Raters[0]
	assert.Equal(t, "r-easy", first.RaterID)
	assert.Equal(t, "Easy Rater", first.RaterName)
	assert.Equal(t, 2, first.ReviewCount)
	assert.Equal(t, 5.0, first.AverageScore)
	assert.Equal(t, 1.73, first.ZScore)
	assert.Equal(t, talent.TendencyLenient, first.Tendency)

	last := report.Raters[5]
	assert.Equal(t, "r-hard", last.RaterID)
	assert.Empty(t, last.RaterName)
	assert.Equal(t, -1.73, last.ZScore)
	assert.Equal(t, talent.TendencySevere, last.Tendency)

	for _, r := range report.Raters[1:5] {
		assert.Equal(t, talent.TendencyNeutral, r.Tendency, r.RaterID)
		assert.Zero(t, r.ZScore)
	}
	assert.Equal(t, "r2", report.Raters[1].RaterID, "ties break on rater id")
}

func TestGetRaterBias_ZeroStdDev(t *testing.T) {
	svc := newService([]performance.Appraisal{review("a", "r1", 4), review("b", "r2", 4)})

	report, err := svc.GetRaterBias(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.PopulationStdDev)
	for _, r := range report.Raters {
		assert.Zero(t, r.ZScore)
		assert.Equal(t, talent.TendencyNeutral, r.Tendency)
	}
}

func TestGetRaterBias_Empty(t *testing.T) {
	report, err := newService(nil).GetRaterBias(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.TotalReviews)
	assert.NotNil(t, report.Raters)
	assert.Empty(t, report.Raters)
}

func TestBands(t *testing.T) {
	assert.Equal(t, talent.BandLow, performanceBand(2.49))
	assert.Equal(t, talent.BandMedium, performanceBand(2.5))
	assert.Equal(t, talent.BandMedium, performanceBand(3.74))
	assert.Equal(t, talent.BandHigh, performanceBand(3.75))

	assert.Equal(t, talent.BandMedium, potentialBand(nil))
	assert.Equal(t, talent.BandLow, potentialBand(potential(performance.PotentialLow)))
	assert.Equal(t, talent.BandHigh, potentialBand(potential(performance.PotentialHigh)))
}

func TestGetNineBox(t *testing.T) {
	e1 := review("e1", "r", 4.5)
	e1.Potential = potential(performance.PotentialHigh)
	e2 := review("e2", "r", 2.0)
	e3old := review("e3", "r", 2.0)
	e3old.ID = "e3-old"
	e3old.PublishedAt = published.AddDate(-1, 0, 0)
	e3 := review("e3", "r", 3.0)
	e3.Potential = potential(performance.PotentialLow)
	e5 := review("e5", "r", 3.75)
	e5.Potential = potential(performance.PotentialHigh)

	svc := newService([]performance.Appraisal{e1, e2, e3old, e3, e5})

	box, err := svc.GetNineBox(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, box.TotalAssessed)
	require.Len(t, box.Cells, 9)

	star := box.Cells[2]
	assert.Equal(t, talent.BandHigh, star.Performance)
	assert.Equal(t, talent.BandHigh, star.Potential)
	assert.Equal(t, "Star", star.Label)
	assert.Equal(t, []string{"e1", "e5"}, star.EmployeeIDs)

	assert.Equal(t, "Rough Diamond", box.Cells[0].Label)
	assert.Zero(t, box.Cells[0].Count)
	assert.Equal(t, []string{}, box.Cells[0].EmployeeIDs)

	assert.Equal(t, "Inconsistent Player", box.Cells[3].Label)
	assert.Equal(t, []string{"e2"}, box.Cells[3].EmployeeIDs)

	assert.Equal(t, "Effective Performer", box.Cells[7].Label)
	assert.Equal(t, []string{"e3"}, box.Cells[7].EmployeeIDs)

	total := 0
	for _, c := range box.Cells {
		total += c.Count
	}
	assert.Equal(t, box.TotalAssessed, total)
}
