package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
)

// Loader is the store surface the system endpoints need
type Loader interface {
	Load(ctx context.Context) (sales.Snapshot, error)
	Snapshot() sales.Snapshot
	LoadedAt() time.Time
}

// SystemHandler serves liveness and the store reload
type SystemHandler struct {
	BaseHandler
	store    Loader
	version  string
	source   string
	onReload func()
}

// NewSystemHandler creates a new SystemHandler. onReload may be nil.
func NewSystemHandler(store Loader, version, source string, onReload func()) *SystemHandler {
	if onReload == nil {
		onReload = func() {}
	}
	return &SystemHandler{store: store, version: version, source: source, onReload: onReload}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/store/reload", h.Reload)
}

// RegisterRootRoutes registers the unversioned endpoints
func (h *SystemHandler) RegisterRootRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
}

func counts(snap sales.Snapshot) map[sales.Kind]int {
	out := make(map[sales.Kind]int, len(sales.Kinds))
	for _, k := range sales.Kinds {
		out[k] = snap.Len(k)
	}
	return out
}

// Health reports liveness and what the store holds. Status is "empty"
// until the first successful load.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:  "ok",
		Version: h.version,
		Source:  h.source,
		Counts:  counts(h.store.Snapshot()),
	}
	if at := h.store.LoadedAt(); at.IsZero() {
		resp.Status = "empty"
	} else {
		resp.LoadedAt = &at
	}
	h.Success(c, resp)
}

// Reload refetches every collection. A failed reload keeps the previous data.
func (h *SystemHandler) Reload(c *gin.Context) {
	snap, err := h.store.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.onReload()
	h.Success(c, gin.H{"counts": counts(snap)})
}
