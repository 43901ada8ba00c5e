package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/user"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	Version        string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	PayrollAnalytics PayrollAnalyticsHandler
	OrgStructure     OrgStructureHandler
	Workforce        WorkforceHandler
	ProfileRisk      ProfileRiskHandler
	Talent           TalentHandler
	Dashboard        DashboardHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-analytics"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll-analytics", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollAnalyticsView))
				r.Get("/story", h.PayrollAnalytics.GetStory)
				r.Get("/story/pdf", h.PayrollAnalytics.GetStoryPDF)
				r.Get("/forecast", h.PayrollAnalytics.GetForecast)
				r.Get("/runs/{runID}/ghost-employees", h.PayrollAnalytics.GetGhostEmployees)
			})

			r.Route("/org-structure-analytics", func(r chi.Router) {

				// Organisation wide
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrgAnalyticsView))
					r.Get("/health", h.OrgStructure.GetStructuralHealth)
					r.Get("/departments", h.OrgStructure.GetDepartmentAnalytics)
					r.Get("/position-risk", h.OrgStructure.GetPositionRisk)
					r.Get("/cost-centers", h.OrgStructure.GetCostCenters)
					r.Get("/span-of-control", h.OrgStructure.GetSpanOfControl)
					r.Get("/vacancy-forecast", h.OrgStructure.GetVacancyForecast)
					r.Get("/summary", h.OrgStructure.GetSummary)

					r.With(middleware.RequirePermission(user.PermissionOrgSimulate)).
						Post("/simulate", h.OrgStructure.SimulateChange)
				})

				// Department heads see their own department only
				r.Route("/departments/{departmentID}", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOrgDepartmentView))
					r.Use(middleware.RequireDepartmentAccess("departmentID"))
					r.Get("/summary", h.OrgStructure.GetDepartmentSummary)
					r.Get("/position-risk", h.OrgStructure.GetDepartmentPositionRisk)
					r.Get("/span-of-control", h.OrgStructure.GetDepartmentSpanOfControl)
					r.Get("/vacancy-forecast", h.OrgStructure.GetDepartmentVacancyForecast)
				})
			})

			r.Route("/workforce-analytics", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionWorkforceView))
				r.Get("/headcount-trends", h.Workforce.GetHeadcountTrends)
				r.Get("/turnover", h.Workforce.GetTurnover)
				r.Get("/demographics", h.Workforce.GetDemographics)
				r.Get("/attrition-forecast", h.Workforce.GetAttritionForecast)
				r.Get("/high-risk-employees", h.Workforce.GetHighRiskEmployees)
			})

			r.Route("/profile-risk", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionProfileRiskView))
				r.Post("/change-requests/analyze", h.ProfileRisk.AnalyzeChangeRequest)
				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Get("/retention-risk", h.ProfileRisk.GetRetentionRisk)
					r.Get("/deactivation-impact", h.ProfileRisk.GetDeactivationImpact)
					r.Get("/health", h.ProfileRisk.GetProfileHealth)
				})
			})

			r.Route("/talent-analytics", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTalentView))
				r.Get("/rater-bias", h.Talent.GetRaterBias)
				r.Get("/nine-box", h.Talent.GetNineBox)
			})

			r.Route("/dashboards", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveDashboardView)).
					Get("/leaves", h.Dashboard.GetLeaves)
				r.With(middleware.RequirePermission(user.PermissionTimeDashboardView)).
					Get("/time-management", h.Dashboard.GetTimeManagement)
			})
		})
	})

	return r
}
