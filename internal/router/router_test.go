package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinematch/internal/config"
	"github.com/iliyamo/cinematch/internal/handler"
	"github.com/iliyamo/cinematch/internal/middleware"
	"github.com/iliyamo/cinematch/internal/repository"
	"github.com/iliyamo/cinematch/internal/service"
)

func TestRegisterCinema_LimitsOnlyBookingRoutes(t *testing.T) {
	seats := repository.NewSeatRepo(3, 5, 1500)
	svc := service.NewBookingService(seats, service.Pricing{BaseCents: 1500, ElevatedCents: 1800}, zap.NewNop())
	limit := middleware.NewTokenBucket(config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		Prefix:         "test",
	}, nil, zap.NewNop())

	e := echo.New()
	RegisterRoutes(e)
	RegisterCinema(e, handler.NewCinemaHandler(svc), nil, limit)

	get := func(target string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get("/healthz"))
	require.Equal(t, http.StatusCreated, get("/api/cinema/reserve?id=A1&vibe=x"))
	assert.Equal(t, http.StatusTooManyRequests, get("/api/cinema/reserve?id=A2&vibe=x"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get("/api/cinema/view"))
	}
	assert.Equal(t, http.StatusOK, get("/api/cinema/stats"))
}
