package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/demo"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// envelope mirrors dto.Response with the payload left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newEngine(handlers ...registrar) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return engine
}

func call(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// seededStore holds ids 1..6: two products, a salesman, a customer and two sales.
func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(demo.NewBackend())
	ctx := context.Background()

	_, err := s.AddProduct(ctx, sales.Product{Name: "Laptop", Category: "Electronics", Price: decimal.NewFromInt(1000), Quantity: 10})
	require.NoError(t, err)
	_, err = s.AddProduct(ctx, sales.Product{Name: "Standing Desk", Category: "Furniture", Price: decimal.NewFromInt(250), Quantity: 4})
	require.NoError(t, err)
	target := decimal.NewFromInt(5000)
	_, err = s.AddSalesman(ctx, sales.Salesman{Name: "Alice", Email: "alice@example.com", Region: "North", Target: &target,
		JoinDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = s.AddCustomer(ctx, sales.Customer{Name: "Acme Corp", Email: "buy@acme.test"})
	require.NoError(t, err)
	_, err = s.AddSale(ctx, sales.Sale{ProductID: "1", SalesmanID: "3", Quantity: 2, Amount: decimal.NewFromInt(2000),
		Date: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), Status: sales.StatusCompleted, Region: "North"})
	require.NoError(t, err)
	_, err = s.AddSale(ctx, sales.Sale{ProductID: "2", Quantity: 1, Amount: decimal.NewFromInt(250),
		Date: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), Status: sales.StatusPending})
	require.NoError(t, err)
	return s
}
