package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/config"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	appHTTP "github.com/cmlabs-hris/workforce-analytics/internal/handler/http"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cache"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cron"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-analytics/internal/repository/memory"
	"github.com/cmlabs-hris/workforce-analytics/internal/repository/postgresql"
	dashboardService "github.com/cmlabs-hris/workforce-analytics/internal/service/dashboard"
	orgStructureService "github.com/cmlabs-hris/workforce-analytics/internal/service/orgstructure"
	payrollAnalyticsService "github.com/cmlabs-hris/workforce-analytics/internal/service/payrollanalytics"
	profileRiskService "github.com/cmlabs-hris/workforce-analytics/internal/service/profilerisk"
	talentService "github.com/cmlabs-hris/workforce-analytics/internal/service/talent"
	workforceService "github.com/cmlabs-hris/workforce-analytics/internal/service/workforce"
)

const (
	version           = "v1.0.0"
	accessTokenTTL    = time.Hour
	cronJobTimeout    = 2 * time.Minute
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 60 * time.Second
)

type repositories struct {
	employee     employee.EmployeeRepository
	organization organization.OrganizationRepository
	payroll      payroll.PayrollRepository
	attendance   attendance.AttendanceRepository
	appraisal    performance.AppraisalRepository
	leave        leave.LeaveRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "workforce-analytics"), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos repositories
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		ds := memory.Seed(time.Now())
		repos = repositories{
			employee:     memory.NewEmployeeRepository(ds),
			organization: memory.NewOrganizationRepository(ds),
			payroll:      memory.NewPayrollRepository(ds),
			attendance:   memory.NewAttendanceRepository(ds),
			appraisal:    memory.NewAppraisalRepository(ds),
			leave:        memory.NewLeaveRepository(ds),
		}
		slog.Warn("Serving the seeded in-memory store")
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		repos = repositories{
			employee:     postgresql.NewEmployeeRepository(db),
			organization: postgresql.NewOrganizationRepository(db),
			payroll:      postgresql.NewPayrollRepository(db),
			attendance:   postgresql.NewAttendanceRepository(db),
			appraisal:    postgresql.NewAppraisalRepository(db),
			leave:        postgresql.NewLeaveRepository(db),
		}
	}

	analyticsCache := cache.New(ctx, cfg.Redis.Enabled, cache.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if closer, ok := analyticsCache.(io.Closer); ok {
		defer closer.Close()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessTokenTTL)

	payrollAnalyticsSvc := payrollAnalyticsService.NewPayrollAnalyticsService(repos.payroll, repos.attendance)
	orgStructureSvc := orgStructureService.NewOrgStructureService(repos.organization, repos.employee, nil)
	workforceSvc := workforceService.NewWorkforceService(repos.employee, repos.organization, repos.appraisal, workforceService.Options{
		ReviewLookbackMonths:  cfg.Analytics.ReviewLookbackMonths,
		SyntheticReviewFactor: cfg.Analytics.SyntheticReviewFactor,
		HighRiskLimit:         cfg.Analytics.HighRiskLimit,
	})
	profileRiskSvc := profileRiskService.NewProfileRiskService(repos.employee, repos.organization, repos.appraisal, nil)
	talentSvc := talentService.NewTalentService(repos.appraisal, repos.employee)
	dashboardSvc := dashboardService.NewDashboardService(
		repos.leave,
		repos.attendance,
		repos.employee,
		repos.organization,
		analyticsCache,
		cfg.Analytics.CacheTTL,
		nil,
	)

	scheduler := cron.NewScheduler(ctx, cronJobTimeout)
	cron.NewDashboardJobs(dashboardSvc, analyticsCache, cfg.Analytics.CacheWarmInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       level,
		AllowedOrigins: cfg.App.AllowOrigins,
	}, JWTService, appHTTP.Handlers{
		PayrollAnalytics: appHTTP.NewPayrollAnalyticsHandler(payrollAnalyticsSvc),
		OrgStructure:     appHTTP.NewOrgStructureHandler(orgStructureSvc),
		Workforce:        appHTTP.NewWorkforceHandler(workforceSvc),
		ProfileRisk:      appHTTP.NewProfileRiskHandler(profileRiskSvc),
		Talent:           appHTTP.NewTalentHandler(talentSvc),
		Dashboard:        appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "store", cfg.App.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
