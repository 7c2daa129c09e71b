package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"relief-fund-backend/internal/config"
	"relief-fund-backend/internal/testutil/sqlitetest"
)

func TestModule_GraphIsComplete(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Module))
}

func TestServer_EndToEnd(t *testing.T) {
	gdb := sqlitetest.Open(t)
	memberID := strings.Repeat("a", 32)
	sqlitetest.SeedMembers(t, gdb, memberID)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		AppEnv:       "test",
		CacheEnabled: true,
		CacheTTL:     time.Minute,
		IdempTTLSecs: 60,
		Tx:           config.TxConfig{LockWait: time.Second, Timeout: 5 * time.Second, BulkTimeout: 5 * time.Second},
	}
	reg := provideRegistry()
	log := zap.NewNop()
	uc := provideUsecase(gdb, rdb, cfg, log, provideMetrics(reg, cfg))
	e := newEcho(cfg, uc, rdb, reg, log)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/members/"+memberID+"/complaints",
			strings.NewReader(`{"title":"Flooded house","location":"Ward 4","severity":"HIGH"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Ax-Request-Id", strings.Repeat("1", 32))
		req.Header.Set("Ax-Request-At", time.Now().UTC().Format(time.RFC3339))
		req.Header.Set("Ax-Actor-Id", memberID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	first := post()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := post()
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Ax-Idempotent-Replay"))

	var created struct {
		ComplaintID string `json:"complaint_id"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))

	// mutating routes require the idempotency headers
	req := httptest.NewRequest(http.MethodPost, "/complaints/"+created.ComplaintID+"/approve",
		strings.NewReader(`{"approver_id":"`+memberID+`","amount":"10"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// fund read goes through the cache
	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/"+memberID+"/fund", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.True(t, mr.Exists("relief:fund:"+memberID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `relief_workflow_total{env="test",outcome="success",service="relief-fund",workflow="file_complaint"} 1`)
	assert.Contains(t, string(body), `relief_read_cache_total{entity="fund",env="test",result="hit",service="relief-fund"} 1`)
}
