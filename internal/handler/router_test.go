//go:build unit

package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"scooter-rental/internal/handler"
	"scooter-rental/internal/handler/api"
	"scooter-rental/internal/handler/middleware"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/pkg/requestid"
	"scooter-rental/tests/common/builder"
	"scooter-rental/tests/common/httptest"
	commandsmock "scooter-rental/tests/mock/commands"
	queriesmock "scooter-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerMocks struct {
	offers  *commandsmock.MockOfferCommands
	orders  *commandsmock.MockOrderCommands
	queries *queriesmock.MockOrderQueries
}

func setupRouter(t *testing.T) (*gin.Engine, routerMocks) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	m := routerMocks{
		offers:  commandsmock.NewMockOfferCommands(ctrl),
		orders:  commandsmock.NewMockOrderCommands(ctrl),
		queries: queriesmock.NewMockOrderQueries(ctrl),
	}
	cfg := config.NewTestConfig()

	engine := gin.New()
	handler.NewRouter(engine, cfg, middleware.NewLogger(cfg.Log),
		api.NewOfferHandler(m.offers),
		api.NewOrderHandler(m.orders, m.queries))
	return engine, m
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, nil)

	var body map[string]string
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRequestID(t *testing.T) {
	t.Run("クライアント指定のIDをそのまま返す", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, map[string]string{requestid.Header: "req-123"})
		httptest.AssertRequestID(t, rec, "req-123")
	})

	t.Run("未指定なら生成する", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, nil)
		httptest.AssertRequestID(t, rec, "")
	})

	t.Run("ユースケースまでコンテキストで伝播する", func(t *testing.T) {
		router, m := setupRouter(t)
		snap := builder.NewOrderBuilder().BuildSnapshot()

		m.queries.EXPECT().GetOrder(gomock.Cond(func(x any) bool {
			ctx, ok := x.(context.Context)
			return ok && requestid.FromContext(ctx) == "trace-me"
		}), snap.ID).Return(&snap, true, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/orders/"+snap.ID.String(), nil, map[string]string{requestid.Header: "trace-me"})
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	_ = httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, nil)
	rec := httptest.PerformRequest(t, router, http.MethodGet, "/metrics", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "scooter_rental_http_requests_total"))
}

func TestErrorBody(t *testing.T) {
	t.Run("未定義ルートはJSONの404", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/nope", nil, map[string]string{requestid.Header: "req-404"})
		body := httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "Not found")
		assert.Equal(t, "req-404", body.RequestID)
	})

	t.Run("ハンドラのエラーにもリクエストIDが付く", func(t *testing.T) {
		router, _ := setupRouter(t)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/orders/not-a-uuid", nil, nil)
		body := httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid id")
		assert.Equal(t, httptest.AssertRequestID(t, rec, ""), body.RequestID)
	})
}

func TestCORSExposesRequestID(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), requestid.Header)
}
