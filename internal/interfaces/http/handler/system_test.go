package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/demo"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
)

type brokenSales struct {
	*demo.Backend
}

func (brokenSales) ListSales(context.Context) ([]sales.Sale, error) {
	return nil, shared.NewTransportError("The sales backend is unreachable")
}

func systemEngine(h *SystemHandler) *gin.Engine {
	engine := newEngine(h)
	h.RegisterRootRoutes(engine)
	return engine
}

func TestSystemHandler_HealthAndReload(t *testing.T) {
	s := store.New(demo.Seed(3, 20, testNow))
	reloads := 0
	engine := systemEngine(NewSystemHandler(s, "1.2.0", "demo", func() { reloads++ }))

	w, env := call(t, engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[dto.HealthResponse](t, env)
	assert.Equal(t, "empty", health.Status)
	assert.Nil(t, health.LoadedAt)
	assert.Equal(t, "demo", health.Source)

	w, _ = call(t, engine, http.MethodPost, "/api/v1/store/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, reloads)

	_, env = call(t, engine, http.MethodGet, "/health", nil)
	health = decode[dto.HealthResponse](t, env)
	assert.Equal(t, "ok", health.Status)
	assert.NotNil(t, health.LoadedAt)
	assert.Equal(t, "1.2.0", health.Version)
	assert.Equal(t, demo.ProductCount, health.Counts[sales.KindProduct])
	assert.Equal(t, 20, health.Counts[sales.KindSale])
}

func TestSystemHandler_ReloadFailureKeepsSnapshot(t *testing.T) {
	s := store.New(brokenSales{demo.Seed(3, 20, testNow)})
	engine := systemEngine(NewSystemHandler(s, "dev", "demo", nil))

	w, env := call(t, engine, http.MethodPost, "/api/v1/store/reload", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, dto.ErrCodeUpstream, env.Error.Code)
	assert.True(t, s.LoadedAt().IsZero())
}

func TestBaseHandler_UnknownError(t *testing.T) {
	var h BaseHandler
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeInternal)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
