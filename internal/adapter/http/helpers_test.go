package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"relief-fund-backend/internal/adapter/repository/gormrepo"
	"relief-fund-backend/internal/testutil/sqlitetest"
	"relief-fund-backend/internal/usecase/relief"
)

var (
	memberA  = strings.Repeat("a", 32)
	memberB  = strings.Repeat("b", 32)
	approver = strings.Repeat("e", 32)
	missing  = strings.Repeat("f", 32)
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// newAPI mounts every route over a fresh SQLite store seeded with active members.
func newAPI(t *testing.T, members ...string) (*echo.Echo, *gorm.DB) {
	t.Helper()
	gdb := sqlitetest.Open(t)
	sqlitetest.SeedMembers(t, gdb, members...)
	uc := relief.NewUsecase(gormrepo.NewGormUoW(gdb), gormrepo.NewRepos(gdb))

	e := echo.New()
	e.HideBanner = true
	RegisterRoutes(e, uc)
	return e, gdb
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}

// fileComplaint files a HIGH severity complaint through the API and returns its id.
func fileComplaint(t *testing.T, e *echo.Echo, memberID, title string) string {
	t.Helper()
	rec := doJSON(t, e, stdhttp.MethodPost, "/members/"+memberID+"/complaints", map[string]any{
		"title":    title,
		"location": "Ward 4",
		"severity": "high",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("file complaint: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got relief.ComplaintDTO
	decode(t, rec, &got)
	return got.ComplaintID
}

func approve(t *testing.T, e *echo.Echo, complaintID, amount string) {
	t.Helper()
	rec := doJSON(t, e, stdhttp.MethodPost, "/complaints/"+complaintID+"/approve", map[string]any{
		"approver_id": approver,
		"amount":      amount,
	})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
