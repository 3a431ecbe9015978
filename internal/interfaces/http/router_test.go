package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/hr-erp-api/internal/application/analytics"
	"github.com/jhoicas/hr-erp-api/internal/application/attendance"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/hr-erp-api/internal/interfaces/http"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

type apiEnv struct {
	t     *testing.T
	app   *fiber.App
	clock *clock
}

// newAPI monta la API completa sobre el almacenamiento en memoria con reloj fijo
// (lunes 11/03/2024 08:30 UTC).
func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	loc := time.UTC
	clk := &clock{t: time.Date(2024, time.March, 11, 8, 30, 0, 0, loc)}
	store := memory.NewStore()

	authUC := auth.NewAuthUseCase(
		store.Accounts(), store.Employees(), store.TxRunner(),
		auth.JWTConfig{Secret: "e2e-secret", ExpMinutes: 7 * 24 * 60, Issuer: "hr-erp-test"},
		bcrypt.MinCost, loc,
	).WithClock(clk.Now)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "hr-erp-test"})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		Ledger:       attendance.NewLedger(store.Attendance(), loc, attendance.DefaultLateHour).WithClock(clk.Now),
		EmployeeUC:   usecase.NewEmployeeUseCase(store.Employees(), store.TxRunner(), loc),
		DepartmentUC: usecase.NewDepartmentUseCase(store.Departments(), store.Employees()),
		LeaveUC:      usecase.NewLeaveUseCase(store.Leaves()),
		PayrollUC:    usecase.NewPayrollUseCase(store.Salaries()),
		DashboardUC:  appanalytics.NewDashboardUseCase(store.Employees(), store.Departments(), store.Leaves(), store.Attendance(), loc).WithClock(clk.Now),
		ServiceName:  "hr-erp-test",
	})
	return &apiEnv{t: t, app: app, clock: clk}
}

func (e *apiEnv) do(method, path, token string, body interface{}) *http.Response {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *apiEnv) register(email, role string) dto.AuthResponse {
	e.t.Helper()
	resp := e.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:     email,
		Password:  "password123",
		Role:      role,
		FirstName: "Jane",
		LastName:  "Smith",
	})
	require.Equal(e.t, http.StatusCreated, resp.StatusCode)
	return decode[dto.AuthResponse](e.t, resp)
}

func TestAPI_JornadaCompletaDeJane(t *testing.T) {
	api := newAPI(t)
	reg := api.register("jane@example.com", "")
	require.NotNil(t, reg.User.Employee)
	assert.Equal(t, "EMPLOYEE", reg.User.Role)
	janeID := reg.User.Employee.ID

	resp := api.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "JANE@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.AuthResponse](t, resp)
	require.NotEmpty(t, login.Token)
	token := login.Token

	resp = api.do(http.MethodPost, "/api/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	in := decode[dto.AttendanceResponse](t, resp)
	assert.Equal(t, janeID, in.EmployeeID)
	assert.Equal(t, "2024-03-11", in.Date)
	assert.Equal(t, "PRESENT", in.Status)
	require.NotNil(t, in.CheckIn)
	assert.Nil(t, in.CheckOut)

	resp = api.do(http.MethodPost, "/api/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ALREADY_CHECKED_IN", decode[dto.ErrorResponse](t, resp).Code)

	api.clock.t = time.Date(2024, time.March, 11, 17, 10, 0, 0, time.UTC)
	resp = api.do(http.MethodPost, "/api/attendance/check-out", token, dto.CheckRequest{EmployeeID: janeID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AttendanceResponse](t, resp)
	require.NotNil(t, out.CheckOut)
	assert.True(t, out.CheckOut.Equal(api.clock.t))
	assert.True(t, in.CheckIn.Equal(*out.CheckIn), "el check-out no modifica la entrada")

	resp = api.do(http.MethodGet, "/api/attendance?date=2024-03-11", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.AttendanceResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, janeID, list[0].EmployeeID)
	require.NotNil(t, list[0].Employee)
	assert.Equal(t, "Jane", list[0].Employee.FirstName)
}

func TestAPI_CheckInTardeDespuesDeLasNueve(t *testing.T) {
	api := newAPI(t)
	api.clock.t = time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)
	token := api.register("late@example.com", "").Token

	resp := api.do(http.MethodPost, "/api/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "LATE", decode[dto.AttendanceResponse](t, resp).Status)
}

func TestAPI_CheckOutSinCheckIn_Retorna404(t *testing.T) {
	api := newAPI(t)
	token := api.register("jane@example.com", "").Token

	resp := api.do(http.MethodPost, "/api/attendance/check-out", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_CHECKED_IN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_EmployeeNoMarcaPorOtro(t *testing.T) {
	api := newAPI(t)
	jane := api.register("jane@example.com", "")
	bob := api.register("bob@example.com", "")

	resp := api.do(http.MethodPost, "/api/attendance/check-in", jane.Token, dto.CheckRequest{EmployeeID: bob.User.Employee.ID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_HRManagerMarcaEnNombreDeOtro(t *testing.T) {
	api := newAPI(t)
	jane := api.register("jane@example.com", "")
	hr := api.register("hr@example.com", "HR_MANAGER")

	resp := api.do(http.MethodPost, "/api/attendance/check-in", hr.Token, dto.CheckRequest{EmployeeID: jane.User.Employee.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, jane.User.Employee.ID, decode[dto.AttendanceResponse](t, resp).EmployeeID)
}

func TestAPI_UpsertRequiereRolManager(t *testing.T) {
	api := newAPI(t)
	jane := api.register("jane@example.com", "")
	hr := api.register("hr@example.com", "HR_MANAGER")
	status := "ABSENT"
	notes := "baja médica"
	body := dto.UpsertAttendanceRequest{
		EmployeeID: jane.User.Employee.ID,
		Date:       "2024-03-08",
		Status:     &status,
		Notes:      &notes,
	}

	resp := api.do(http.MethodPost, "/api/attendance", jane.Token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodPost, "/api/attendance", hr.Token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[dto.AttendanceResponse](t, resp)
	assert.Equal(t, "2024-03-08", rec.Date)
	assert.Equal(t, "ABSENT", rec.Status)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, notes, *rec.Notes)
	assert.Nil(t, rec.CheckIn)
}

func TestAPI_UpsertRechazaEntradaInvalida(t *testing.T) {
	api := newAPI(t)
	hr := api.register("hr@example.com", "HR_MANAGER")
	status := "SICK"

	resp := api.do(http.MethodPost, "/api/attendance", hr.Token, dto.UpsertAttendanceRequest{
		EmployeeID: hr.User.Employee.ID, Date: "2024-03-08", Status: &status,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = api.do(http.MethodPost, "/api/attendance", hr.Token, dto.UpsertAttendanceRequest{
		EmployeeID: hr.User.Employee.ID, Date: "08/03/2024",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ValidacionDeRangoEnConsulta(t *testing.T) {
	api := newAPI(t)
	token := api.register("jane@example.com", "").Token

	resp := api.do(http.MethodGet, "/api/attendance?startDate=2024-03-10", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/attendance?startDate=2024-03-12&endDate=2024-03-10", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/attendance?startDate=2024-03-01&endDate=2024-03-31", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.AttendanceResponse](t, resp))
}

func TestAPI_RegistroEmailDuplicado_Retorna400(t *testing.T) {
	api := newAPI(t)
	api.register("jane@example.com", "")

	resp := api.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: " Jane@Example.com", Password: "password123", FirstName: "Jane", LastName: "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	api := newAPI(t)
	api.register("jane@example.com", "")

	for _, in := range []dto.LoginRequest{
		{Email: "jane@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "password123"},
	} {
		resp := api.do(http.MethodPost, "/api/auth/login", "", in)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decode[dto.ErrorResponse](t, resp).Code)
	}
}

func TestAPI_PerfilRequiereToken(t *testing.T) {
	api := newAPI(t)
	reg := api.register("jane@example.com", "")

	resp := api.do(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/auth/profile", reg.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[dto.AccountResponse](t, resp)
	assert.Equal(t, "jane@example.com", profile.Email)
	require.NotNil(t, profile.Employee)
	assert.Equal(t, reg.User.Employee.ID, profile.Employee.ID)
}

func TestAPI_RutasProtegidasSinToken_Retorna401(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/api/attendance", "/api/employees", "/api/dashboard/stats", "/api/payroll"} {
		resp := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, resp).Code, path)
	}
}

func TestAPI_RolesPorRuta(t *testing.T) {
	api := newAPI(t)
	jane := api.register("jane@example.com", "")
	hr := api.register("hr@example.com", "HR_MANAGER")

	resp := api.do(http.MethodGet, "/api/payroll", jane.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/payroll", hr.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodPost, "/api/departments", jane.Token, dto.CreateDepartmentRequest{Name: "Engineering"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodPost, "/api/departments", hr.Token, dto.CreateDepartmentRequest{Name: "Engineering"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dept := decode[dto.DepartmentResponse](t, resp)

	// Borrar es solo para ADMIN.
	resp = api.do(http.MethodDelete, "/api/departments/"+dept.ID, hr.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/departments/"+dept.ID, jane.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_PermisoUsaEmpleadoDelToken(t *testing.T) {
	api := newAPI(t)
	jane := api.register("jane@example.com", "")
	hr := api.register("hr@example.com", "HR_MANAGER")

	resp := api.do(http.MethodPost, "/api/leaves", jane.Token, dto.CreateLeaveRequest{
		LeaveType: "ANNUAL", StartDate: "2024-04-01", EndDate: "2024-04-05", Reason: "Viaje",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	leave := decode[dto.LeaveResponse](t, resp)
	assert.Equal(t, jane.User.Employee.ID, leave.EmployeeID)
	assert.Equal(t, "PENDING", leave.Status)
	assert.Equal(t, 5, leave.Days)

	resp = api.do(http.MethodPatch, "/api/leaves/"+leave.ID+"/status", jane.Token, dto.UpdateLeaveStatusRequest{Status: "APPROVED"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodPatch, "/api/leaves/"+leave.ID+"/status", hr.Token, dto.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "APPROVED", decode[dto.LeaveResponse](t, resp).Status)
}

func TestAPI_MapeoDeNoEncontrado(t *testing.T) {
	api := newAPI(t)
	token := api.register("jane@example.com", "").Token

	resp := api.do(http.MethodGet, "/api/employees/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "EMPLOYEE_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = api.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

// Una ruta inexistente bajo /api responde 404 aunque no lleve token.
func TestAPI_RutaInexistenteBajoAPI_Retorna404(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/api/does-not-exist", "/api/reports/monthly"} {
		resp := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code, path)
	}
}

func TestAPI_Salud(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/health", "/api/health"} {
		resp := api.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		body := decode[map[string]string](t, resp)
		assert.Equal(t, "ok", body["status"])
	}
}

func TestAPI_EstadisticasDelDashboard(t *testing.T) {
	api := newAPI(t)
	token := api.register("jane@example.com", "").Token
	resp := api.do(http.MethodPost, "/api/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.DashboardStatsResponse](t, resp)
	assert.Equal(t, 1, stats.Stats.TotalEmployees)
	assert.Equal(t, 1, stats.Stats.TodayPresent)
	assert.Len(t, stats.AttendanceTrend, 7)
}
