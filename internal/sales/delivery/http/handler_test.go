package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
	"github.com/shopstock/shopstock/internal/sales/usecase/command"
	"github.com/shopstock/shopstock/internal/sales/usecase/query"
	"github.com/shopstock/shopstock/internal/store"
	"github.com/shopstock/shopstock/pkg/auth"
)

type testEnv struct {
	router *mux.Router
	store  *store.Store
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	stores := store.NewManager(nil)
	s, err := stores.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}

	token, err := auth.GenerateToken("user-1", "asha@example.com", "Asha")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	handler := NewSaleHandler(
		command.NewRecordSaleHandler(stores),
		query.NewListSalesHandler(stores),
		query.NewGetSaleHandler(stores),
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	return &testEnv{router: router, store: s, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+e.token)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestSaleRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("GET", "/api/sales", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRecordSaleEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.store.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 5})

	rec := env.do(t, "POST", "/api/sales", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": p.ID, "quantity": 2},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var sale salesdomain.Sale
	if err := json.Unmarshal(rec.Body.Bytes(), &sale); err != nil {
		t.Fatal(err)
	}
	if sale.Total != 20 {
		t.Fatalf("total = %v, want 20", sale.Total)
	}

	got, _ := env.store.Product(p.ID)
	if got.Stock != 3 {
		t.Fatalf("stock = %d, want 3", got.Stock)
	}
}

func TestRecordSaleEndpointRejectsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/sales", map[string]interface{}{"items": []map[string]interface{}{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListSalesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.store.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	env.store.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 10}})

	rec := env.do(t, "GET", "/api/sales", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var views []query.SaleView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || views[0].Items[0].ProductName != "Rice" {
		t.Fatalf("views = %+v", views)
	}

	// Deleted product resolves to the fallback label, not an error
	env.store.DeleteProduct(p.ID)
	rec = env.do(t, "GET", "/api/sales", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatal(err)
	}
	if views[0].Items[0].ProductName != query.UnknownProduct {
		t.Fatalf("product name = %q", views[0].Items[0].ProductName)
	}
}

func TestListSalesEndpointBadDate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/sales?from=yesterday", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetSaleEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.store.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	sale := env.store.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 2, PriceAtSale: 10}})

	rec := env.do(t, "GET", "/api/sales/"+sale.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var view query.SaleView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.ID != sale.ID || view.Total != 20 {
		t.Fatalf("view = %+v", view)
	}

	rec = env.do(t, "GET", "/api/sales/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
