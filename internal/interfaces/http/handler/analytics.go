package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/analytics"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// AnalyticsHandler passes the backend's analytics through the cache
type AnalyticsHandler struct {
	BaseHandler
	svc *analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/analytics")
	a.GET("/dashboard-stats", h.DashboardStats)
	a.GET("/reports", h.Reports)
	a.GET("/leaderboard", h.Leaderboard)
	a.GET("/kpi/executive", h.ExecutiveKPI)
	a.GET("/products/abc", h.ProductABC)
	a.GET("/customers/rfm", h.CustomerRFM)
	a.GET("/salesmen/consistency", h.SalesmanConsistency)
}

func respond[T any](h *AnalyticsHandler, c *gin.Context, v T, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// DashboardStats returns the backend dashboard tiles
func (h *AnalyticsHandler) DashboardStats(c *gin.Context) {
	v, err := h.svc.DashboardStats(c.Request.Context())
	respond(h, c, v, err)
}

// Reports returns the backend report bundle, optionally bounded by start_date and end_date
func (h *AnalyticsHandler) Reports(c *gin.Context) {
	start, end := c.Query("start_date"), c.Query("end_date")
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := sales.ParseDay(d); err != nil {
			h.HandleError(c, shared.NewValidationError(err.Error()))
			return
		}
	}
	v, err := h.svc.Reports(c.Request.Context(), start, end)
	respond(h, c, v, err)
}

// Leaderboard returns the backend leaderboard
func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	v, err := h.svc.Leaderboard(c.Request.Context())
	respond(h, c, v, err)
}

// ExecutiveKPI returns the executive KPI tiles
func (h *AnalyticsHandler) ExecutiveKPI(c *gin.Context) {
	v, err := h.svc.ExecutiveKPI(c.Request.Context())
	respond(h, c, v, err)
}

// ProductABC returns the ABC classification
func (h *AnalyticsHandler) ProductABC(c *gin.Context) {
	v, err := h.svc.ProductABC(c.Request.Context())
	respond(h, c, v, err)
}

// CustomerRFM returns the RFM segments
func (h *AnalyticsHandler) CustomerRFM(c *gin.Context) {
	v, err := h.svc.CustomerRFM(c.Request.Context())
	respond(h, c, v, err)
}

// SalesmanConsistency returns revenue variation per salesman
func (h *AnalyticsHandler) SalesmanConsistency(c *gin.Context) {
	v, err := h.svc.SalesmanConsistency(c.Request.Context())
	respond(h, c, v, err)
}
