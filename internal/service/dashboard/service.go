package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cache"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const unassignedKey = "unassigned"

type DashboardServiceImpl struct {
	leaveRepo      leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	orgRepo        organization.OrganizationRepository
	cache          cache.Cache
	cacheTTL       time.Duration
	now            func() time.Time
}

// NewDashboardService wires the composite dashboards. A nil cache or a zero ttl
// disables caching.
func NewDashboardService(
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo organization.OrganizationRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	now func() time.Time,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		orgRepo:        orgRepo,
		cache:          c,
		cacheTTL:       cacheTTL,
		now:            now,
	}
}

// sources tracks which loads of one dashboard build failed.
type sources struct {
	board string

	mu     sync.Mutex
	failed []string
}

func newSources(board string) *sources {
	return &sources{board: board}
}

func (s *sources) fail(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = append(s.failed, source)
}

// degraded returns the failed sources in name order, nil when all loaded.
func (s *sources) degraded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.failed) == 0 {
		return nil
	}
	out := append([]string(nil), s.failed...)
	sort.Strings(out)
	return out
}

// fetch runs load on g and stores its result in dst. A failing source is logged,
// recorded on src and leaves dst at its zero value so the rest of the dashboard
// still renders.
func fetch[T any](ctx context.Context, g *errgroup.Group, src *sources, source string, dst *T, load func(context.Context) (T, error)) {
	g.Go(func() error {
		v, err := load(ctx)
		if err != nil {
			slog.Warn("Dashboard source failed, rendering empty section",
				"dashboard", src.board, "source", source, "error", err)
			src.fail(source)
			return nil
		}
		*dst = v
		return nil
	})
}

// orgLookup resolves employees to their department names.
type orgLookup struct {
	deptOf    map[string]string
	deptNames map[string]string
}

func newOrgLookup(employees []employee.Employee, departments []organization.Department) orgLookup {
	l := orgLookup{
		deptOf:    make(map[string]string, len(employees)),
		deptNames: make(map[string]string, len(departments)),
	}
	for _, d := range departments {
		l.deptNames[d.ID] = d.Name
	}
	for _, e := range employees {
		if e.DepartmentID != nil {
			l.deptOf[e.ID] = *e.DepartmentID
		}
	}
	return l
}

// department returns the department key and display name for an employee.
func (l orgLookup) department(employeeID string) (string, string) {
	id, ok := l.deptOf[employeeID]
	if !ok {
		return unassignedKey, "Unassigned"
	}
	if name, ok := l.deptNames[id]; ok {
		return id, name
	}
	return id, id
}

func healthStatus(score float64) dashboard.HealthStatus {
	switch {
	case score >= 85:
		return dashboard.HealthExcellent
	case score >= 70:
		return dashboard.HealthGood
	case score >= 50:
		return dashboard.HealthFair
	default:
		return dashboard.HealthPoor
	}
}

func component(name string, score, weight float64) dashboard.HealthComponent {
	score = utils.Round1(clampScore(score))
	return dashboard.HealthComponent{
		Name:   name,
		Score:  score,
		Status: healthStatus(score),
		Weight: weight,
	}
}

func healthScore(components ...dashboard.HealthComponent) dashboard.HealthScore {
	var overall float64
	for _, c := range components {
		overall += c.Score * c.Weight
	}
	overall = utils.Round1(overall)
	return dashboard.HealthScore{
		Overall:    overall,
		Status:     healthStatus(overall),
		Components: components,
	}
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func storyTrend(delta float64) (dashboard.StoryTrend, string) {
	switch {
	case delta > 0:
		return dashboard.StoryUp, "↑"
	case delta < 0:
		return dashboard.StoryDown, "↓"
	default:
		return dashboard.StoryFlat, "→"
	}
}

func story(headline string, delta float64, narrative string, metric dashboard.StoryMetric) dashboard.StoryCard {
	trend, arrow := storyTrend(delta)
	return dashboard.StoryCard{
		Headline:  headline,
		Trend:     trend,
		Arrow:     arrow,
		Narrative: narrative,
		Metric:    metric,
	}
}

const maxStories = 3

func capStories(cards []dashboard.StoryCard) []dashboard.StoryCard {
	if len(cards) > maxStories {
		return cards[:maxStories]
	}
	if cards == nil {
		return []dashboard.StoryCard{}
	}
	return cards
}
