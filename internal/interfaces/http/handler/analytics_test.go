package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/analytics"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockSource) Reports(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockSource) Leaderboard(ctx context.Context) (report.ServerLeaderboard, error) {
	args := m.Called(ctx)
	return args.Get(0).(report.ServerLeaderboard), args.Error(1)
}

func (m *mockSource) ExecutiveKPI(ctx context.Context) (report.ExecutiveKPI, error) {
	args := m.Called(ctx)
	return args.Get(0).(report.ExecutiveKPI), args.Error(1)
}

func (m *mockSource) ProductABC(ctx context.Context) ([]report.ABCRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.ABCRow), args.Error(1)
}

func (m *mockSource) CustomerRFM(ctx context.Context) ([]report.RFMRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.RFMRow), args.Error(1)
}

func (m *mockSource) SalesmanConsistency(ctx context.Context) ([]report.ConsistencyRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.ConsistencyRow), args.Error(1)
}

func (m *mockSource) Predictions(ctx context.Context) (*report.Prediction, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*report.Prediction)
	return p, args.Error(1)
}

func TestAnalyticsHandler(t *testing.T) {
	src := new(mockSource)
	engine := newEngine(NewAnalyticsHandler(analytics.NewService(src)))

	src.On("DashboardStats", mock.Anything).Return(json.RawMessage(`{"total_sales":12}`), nil).Once()
	w, env := call(t, engine, http.MethodGet, "/api/v1/analytics/dashboard-stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_sales":12}`, string(env.Data))

	src.On("Reports", mock.Anything, "2024-01-01", "").Return(json.RawMessage(`[]`), nil).Once()
	w, _ = call(t, engine, http.MethodGet, "/api/v1/analytics/reports?start_date=2024-01-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = call(t, engine, http.MethodGet, "/api/v1/analytics/reports?end_date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

	src.On("Leaderboard", mock.Anything).Return(report.ServerLeaderboard{
		Rows: []report.ServerLeaderboardRow{{Rank: 1, Name: "Alice", Revenue: decimal.NewFromInt(10)}},
	}, nil).Once()
	_, env = call(t, engine, http.MethodGet, "/api/v1/analytics/leaderboard", nil)
	assert.Equal(t, "Alice", decode[report.ServerLeaderboard](t, env).Rows[0].Name)

	src.On("ExecutiveKPI", mock.Anything).Return(report.ExecutiveKPI{}, shared.NewTransportError("The sales backend is unreachable")).Once()
	w, env = call(t, engine, http.MethodGet, "/api/v1/analytics/kpi/executive", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, dto.ErrCodeUpstream, env.Error.Code)
	assert.Equal(t, "The sales backend is unreachable", env.Error.Message)

	src.On("ProductABC", mock.Anything).Return([]report.ABCRow{}, nil).Once()
	src.On("CustomerRFM", mock.Anything).Return([]report.RFMRow{}, shared.NewUnauthorizedError("Session expired")).Once()
	src.On("SalesmanConsistency", mock.Anything).Return([]report.ConsistencyRow{}, nil).Once()

	w, _ = call(t, engine, http.MethodGet, "/api/v1/analytics/products/abc", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = call(t, engine, http.MethodGet, "/api/v1/analytics/customers/rfm", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = call(t, engine, http.MethodGet, "/api/v1/analytics/salesmen/consistency", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	src.AssertExpectations(t)
}
