package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/user"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-analytics/internal/repository/memory"
	dashboardService "github.com/cmlabs-hris/workforce-analytics/internal/service/dashboard"
	orgStructureService "github.com/cmlabs-hris/workforce-analytics/internal/service/orgstructure"
	payrollAnalyticsService "github.com/cmlabs-hris/workforce-analytics/internal/service/payrollanalytics"
	profileRiskService "github.com/cmlabs-hris/workforce-analytics/internal/service/profilerisk"
	talentService "github.com/cmlabs-hris/workforce-analytics/internal/service/talent"
	workforceService "github.com/cmlabs-hris/workforce-analytics/internal/service/workforce"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	router http.Handler
	jwt    jwt.Service
	ds     *memory.Dataset
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	now := func() time.Time { return handlerTestNow }

	ds := memory.Seed(handlerTestNow)
	employeeRepo := memory.NewEmployeeRepository(ds)
	orgRepo := memory.NewOrganizationRepository(ds)
	payrollRepo := memory.NewPayrollRepository(ds)
	attendanceRepo := memory.NewAttendanceRepository(ds)
	appraisalRepo := memory.NewAppraisalRepository(ds)
	leaveRepo := memory.NewLeaveRepository(ds)

	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	router := NewRouter(RouterOptions{
		Env:            "test",
		Version:        "test",
		LogLevel:       slog.LevelError,
		AllowedOrigins: []string{"http://localhost:3000"},
	}, jwtService, Handlers{
		PayrollAnalytics: NewPayrollAnalyticsHandler(payrollAnalyticsService.NewPayrollAnalyticsService(payrollRepo, attendanceRepo)),
		OrgStructure:     NewOrgStructureHandler(orgStructureService.NewOrgStructureService(orgRepo, employeeRepo, now)),
		Workforce: NewWorkforceHandler(workforceService.NewWorkforceService(employeeRepo, orgRepo, appraisalRepo,
			workforceService.Options{Now: now})),
		ProfileRisk: NewProfileRiskHandler(profileRiskService.NewProfileRiskService(employeeRepo, orgRepo, appraisalRepo, now)),
		Talent:      NewTalentHandler(talentService.NewTalentService(appraisalRepo, employeeRepo)),
		Dashboard: NewDashboardHandler(dashboardService.NewDashboardService(leaveRepo, attendanceRepo, employeeRepo, orgRepo,
			nil, 0, now)),
	})

	return &testServer{router: router, jwt: jwtService, ds: ds}
}

func (s *testServer) token(t *testing.T, role user.Role, departmentID *string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("user-1", role, departmentID)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/workforce-analytics/demographics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsForeignToken(t *testing.T) {
	s := newTestServer(t)
	foreign, _, err := jwt.NewJWTService("other-secret", time.Hour).GenerateAccessToken("u", user.RoleAdmin, nil)
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/talent-analytics/nine-box", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PermissionByRole(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		role user.Role
		path string
		want int
	}{
		{"hr manager reads workforce", user.RoleHRManager, "/api/v1/workforce-analytics/demographics", http.StatusOK},
		{"employee has no analytics", user.RoleEmployee, "/api/v1/workforce-analytics/demographics", http.StatusForbidden},
		{"payroll specialist reads payroll", user.RolePayrollSpecialist, "/api/v1/payroll-analytics/story", http.StatusOK},
		{"payroll specialist cannot read talent", user.RolePayrollSpecialist, "/api/v1/talent-analytics/rater-bias", http.StatusForbidden},
		{"department head reads leave dashboard", user.RoleDepartmentHead, "/api/v1/dashboards/leaves", http.StatusOK},
		{"department head cannot read time dashboard", user.RoleDepartmentHead, "/api/v1/dashboards/time-management", http.StatusForbidden},
		{"admin reads org summary", user.RoleAdmin, "/api/v1/org-structure-analytics/summary", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, s.token(t, tt.role, nil), nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_DepartmentHeadScope(t *testing.T) {
	s := newTestServer(t)
	own := s.ds.Departments[1].ID
	other := s.ds.Departments[2].ID
	token := s.token(t, user.RoleDepartmentHead, &own)

	rec := s.do(t, http.MethodGet, "/api/v1/org-structure-analytics/departments/"+own+"/summary", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/org-structure-analytics/departments/"+other+"/summary", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// organisation-wide views stay closed
	rec = s.do(t, http.MethodGet, "/api/v1/org-structure-analytics/health", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_UnknownDepartment(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/org-structure-analytics/departments/"+uuid.NewString()+"/position-risk",
		s.token(t, user.RoleHRManager, nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SimulateChange(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleHRManager, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/org-structure-analytics/simulate", token, map[string]string{
		"action_type": "DEACTIVATE_POSITION",
		"target_id":   s.ds.Positions[2].ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeEnvelope(t, rec)
	assert.True(t, res.Success)

	rec = s.do(t, http.MethodPost, "/api/v1/org-structure-analytics/simulate", token, map[string]string{
		"action_type": "MERGE_DEPARTMENT",
		"target_id":   "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/org-structure-analytics/simulate", token, map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	res = decodeEnvelope(t, rec)
	require.NotNil(t, res.Error)
	assert.Contains(t, res.Error.Details, "target_id")
}

func TestRouter_ProfileRisk(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleHRManager, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/profile-risk/employees/"+s.ds.Employees[5].ID+"/retention-risk", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/profile-risk/employees/"+uuid.NewString()+"/health", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/profile-risk/change-requests/analyze", token, map[string]any{
		"changes":       map[string]any{"bank_account_number": "0099", "email": "new@example.com"},
		"justification": "urgent, please approve",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Data struct {
			Score int    `json:"score"`
			Level string `json:"level"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Greater(t, body.Data.Score, 50)

	rec = s.do(t, http.MethodPost, "/api/v1/profile-risk/change-requests/analyze", token, map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_QueryValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin, nil)

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/workforce-analytics/headcount-trends?months=6", http.StatusOK},
		{"/api/v1/workforce-analytics/headcount-trends?months=40", http.StatusUnprocessableEntity},
		{"/api/v1/workforce-analytics/turnover?period_months=abc", http.StatusUnprocessableEntity},
		{"/api/v1/dashboards/time-management?month=2026-02", http.StatusOK},
		{"/api/v1/dashboards/time-management?month=02-2026", http.StatusUnprocessableEntity},
		{"/api/v1/dashboards/leaves?year=1990", http.StatusUnprocessableEntity},
		{"/api/v1/payroll-analytics/runs/" + uuid.NewString() + "/ghost-employees", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, token, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_PayrollStoryPDF(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll-analytics/story/pdf", s.token(t, user.RolePayrollSpecialist, nil), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-report-")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestRouter_RequestID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/talent-analytics/nine-box", s.token(t, user.RoleHRManager, nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(middleware.RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(middleware.RequestIDHeader))
}
