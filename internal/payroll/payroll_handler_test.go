package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/payroll"
	payrollerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRunService struct {
	executeFn             func(ctx context.Context, actorID string, req payroll.ExecuteRunRequest) (payroll.RunResponse, error)
	getAllRunsFn          func(ctx context.Context) ([]payroll.RunSummaryResponse, error)
	getRunByIDFn          func(ctx context.Context, id string) (payroll.RunResponse, error)
	getEmployeePayslipsFn func(ctx context.Context, employeeID string) ([]payroll.PayslipResponse, error)
	getPayslipPDFFn       func(ctx context.Context, runID, payslipID string) ([]byte, string, error)
	getSettingsFn         func() payroll.SettingsResponse
}

func (f *fakeRunService) Execute(ctx context.Context, actorID string, req payroll.ExecuteRunRequest) (payroll.RunResponse, error) {
	return f.executeFn(ctx, actorID, req)
}

func (f *fakeRunService) GetAllRuns(ctx context.Context) ([]payroll.RunSummaryResponse, error) {
	return f.getAllRunsFn(ctx)
}

func (f *fakeRunService) GetRunByID(ctx context.Context, id string) (payroll.RunResponse, error) {
	return f.getRunByIDFn(ctx, id)
}

func (f *fakeRunService) GetEmployeePayslips(ctx context.Context, employeeID string) ([]payroll.PayslipResponse, error) {
	return f.getEmployeePayslipsFn(ctx, employeeID)
}

func (f *fakeRunService) GetPayslipPDF(ctx context.Context, runID, payslipID string) ([]byte, string, error) {
	return f.getPayslipPDFFn(ctx, runID, payslipID)
}

func (f *fakeRunService) GetSettings() payroll.SettingsResponse {
	if f.getSettingsFn != nil {
		return f.getSettingsFn()
	}
	return payroll.SettingsResponse{}
}

func TestPayrollHandler_ExecuteRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeRunService{
			executeFn: func(ctx context.Context, aid string, req payroll.ExecuteRunRequest) (payroll.RunResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "2026-03-01", req.CutoffStart)
				return payroll.RunResponse{ID: uuid.New().String(), CutoffStart: req.CutoffStart, CutoffEnd: req.CutoffEnd}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"cutoff_start":"2026-03-01","cutoff_end":"2026-03-31"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)

		h.ExecuteRun(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing cutoff fields", func(t *testing.T) {
		h := payroll.NewHandler(&fakeRunService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)

		h.ExecuteRun(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("service error is mapped", func(t *testing.T) {
		svc := &fakeRunService{
			executeFn: func(ctx context.Context, aid string, req payroll.ExecuteRunRequest) (payroll.RunResponse, error) {
				return payroll.RunResponse{}, payrollerrors.ErrInvalidCutoffWindow
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"cutoff_start":"2026-03-31","cutoff_end":"2026-03-01"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)

		h.ExecuteRun(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestPayrollHandler_GetRunById(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		svc := &fakeRunService{
			getRunByIDFn: func(ctx context.Context, id string) (payroll.RunResponse, error) {
				return payroll.RunResponse{}, payrollerrors.ErrRunNotFound
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs/x", nil)
		c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}

		h.GetRunById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeRunService{
		getPayslipPDFFn: func(ctx context.Context, runID, payslipID string) ([]byte, string, error) {
			return []byte("%PDF-1.4 fake"), "payslip_" + payslipID + ".pdf", nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	runID := uuid.New().String()
	slipID := uuid.New().String()
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs/x/payslips/y/download", nil)
	c.Params = []gin.Param{{Key: "id", Value: runID}, {Key: "payslipId", Value: slipID}}

	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), slipID)
	assert.Contains(t, w.Body.String(), "%PDF")
}
