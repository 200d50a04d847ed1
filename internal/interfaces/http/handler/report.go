package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/Rushi-chippa/SalesERPFullProject/internal/application/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
)

const maxRecentSales = 100

// Snapshotter supplies the current collections
type Snapshotter interface {
	Snapshot() sales.Snapshot
}

// Forecaster resolves the next-period forecast, preferring a server prediction
type Forecaster interface {
	Forecast(ctx context.Context, snap sales.Snapshot, now time.Time) report.Forecast
}

// ReportHandler serves the reports assembled from the current snapshot
type ReportHandler struct {
	BaseHandler
	snapshots  Snapshotter
	forecaster Forecaster
	now        func() time.Time
}

// ReportOption configures a ReportHandler
type ReportOption func(*ReportHandler)

// WithForecaster replaces the local forecast with f's resolution
func WithForecaster(f Forecaster) ReportOption {
	return func(h *ReportHandler) { h.forecaster = f }
}

// WithReportClock sets the clock reports are computed against
func WithReportClock(now func() time.Time) ReportOption {
	return func(h *ReportHandler) { h.now = now }
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(s Snapshotter, opts ...ReportOption) *ReportHandler {
	h := &ReportHandler{snapshots: s, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes implements router.RouteRegistrar
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/dashboard", h.Dashboard)
	reports.GET("/sales", h.Sales)
	reports.GET("/leaderboard", h.Leaderboard)
	reports.GET("/forecast", h.Forecast)
}

// Dashboard returns the dashboard summary
func (h *ReportHandler) Dashboard(c *gin.Context) {
	recent := reportapp.DefaultRecent
	if v := c.Query("recent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxRecentSales {
			h.Error(c, dto.ErrCodeValidation, "recent must be an integer between 0 and "+strconv.Itoa(maxRecentSales))
			return
		}
		recent = n
	}

	now := h.now()
	snap := h.snapshots.Snapshot()
	summary := reportapp.DashboardSummary(snap, recent, now)
	if h.forecaster != nil {
		summary.Forecast = h.forecaster.Forecast(c.Request.Context(), snap, now)
	}
	h.Success(c, summary)
}

// Sales returns the sales report for a preset range or explicit days
func (h *ReportHandler) Sales(c *gin.Context) {
	r, err := reportapp.ParseRange(c.Query("range"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reportapp.SalesReport(h.snapshots.Snapshot(), r, h.now()))
}

// Leaderboard ranks salesmen by revenue
func (h *ReportHandler) Leaderboard(c *gin.Context) {
	h.Success(c, reportapp.Leaderboard(h.snapshots.Snapshot()))
}

// Forecast predicts next month's revenue
func (h *ReportHandler) Forecast(c *gin.Context) {
	now := h.now()
	snap := h.snapshots.Snapshot()
	if h.forecaster != nil {
		h.Success(c, h.forecaster.Forecast(c.Request.Context(), snap, now))
		return
	}
	h.Success(c, reportapp.LocalForecast(snap, now))
}
