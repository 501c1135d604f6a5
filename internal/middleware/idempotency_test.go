package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func setupIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	calls := 0

	r := gin.New()
	r.POST("/payroll-runs", middleware.Idempotency(rdb), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"status": "success"})
	})
	return r, mock, &calls
}

func TestIdempotency(t *testing.T) {
	t.Run("no key passes through", func(t *testing.T) {
		r, _, calls := setupIdempotencyRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader("{}"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
	})

	t.Run("cached response is replayed without the handler", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		cacheKey := "idemp:/payroll-runs::key-1"
		mock.ExpectGet(cacheKey).SetVal(`{"id":"abc"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "abc")
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		cacheKey := "idemp:/payroll-runs::key-2"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "key-2")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request acquires the lock and runs", func(t *testing.T) {
		r, mock, calls := setupIdempotencyRouter(t)

		cacheKey := "idemp:/payroll-runs::key-3"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "key-3")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
