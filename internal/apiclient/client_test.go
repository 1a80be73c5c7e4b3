package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"shoepos/internal/config"
	"shoepos/internal/models"
)

type ClientTestSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
	token   string
}

func (s *ClientTestSuite) SetupTest() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.client = s.newClient("")
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) newClient(token string) *Client {
	cfg := config.BackendConfig{
		BaseURL:              s.server.URL + "/api/v1/",
		Timeout:              config.Duration{Duration: 2 * time.Second},
		APIToken:             token,
		RetryMaxTries:        3,
		RetryInitialInterval: config.Duration{Duration: time.Millisecond},
	}
	return NewClient(cfg, zap.NewNop(), WithHTTPClient(s.server.Client()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *ClientTestSuite) TestListProducts() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/api/v1/products", r.URL.Path)
		s.Empty(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"productId": 1, "productName": "Runner", "price": 50, "quantity": 4, "categoryId": 2,
				"variants": []map[string]interface{}{{"variantId": 7, "productId": 1, "size": "42", "stock": 3}}},
		})
	}

	products, err := s.client.Products.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal(int64(1), products[0].ProductID)
	s.Equal("Runner", products[0].ProductName)
	s.Require().Len(products[0].Variants, 1)
	s.Equal("42", *products[0].Variants[0].Size)
	s.Nil(products[0].Variants[0].Color)
}

func (s *ClientTestSuite) TestListNullBodyReturnsEmptySlice() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}

	customers, err := s.client.Customers.List(context.Background())
	s.Require().NoError(err)
	s.NotNil(customers)
	s.Empty(customers)
}

func (s *ClientTestSuite) TestSubResourcePaths() {
	var paths []string
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, []interface{}{})
	}

	_, err := s.client.Products.ListByCategory(context.Background(), 3)
	s.Require().NoError(err)
	_, err = s.client.Variants.ListByProduct(context.Background(), 9)
	s.Require().NoError(err)

	s.Equal([]string{"/api/v1/products/category/3", "/api/v1/product-variants/product/9"}, paths)
}

func (s *ClientTestSuite) TestCreateOrderSendsCamelCaseBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/api/v1/orders", r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		s.NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("2024-03-01", body["orderDate"])
		s.Equal(float64(5), body["customerId"])
		s.Equal(float64(1), body["employeeId"])
		s.Equal(float64(120), body["totalAmount"])

		writeJSON(w, http.StatusCreated, map[string]interface{}{"orderId": 77, "orderDate": "2024-03-01", "customerId": 5, "employeeId": 1, "totalAmount": 120})
	}

	order, err := s.client.Orders.Create(context.Background(), &models.CreateOrderRequest{
		OrderDate: "2024-03-01", CustomerID: 5, EmployeeID: 1, TotalAmount: 120,
	})
	s.Require().NoError(err)
	s.Equal(int64(77), order.OrderID)
}

func (s *ClientTestSuite) TestUpdateAndDeletePaths() {
	var calls []string
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"categoryId": 4, "categoryName": "Boots"})
	}

	name := "Boots"
	cat, err := s.client.Categories.Update(context.Background(), 4, &models.UpdateCategoryRequest{CategoryName: &name})
	s.Require().NoError(err)
	s.Equal("Boots", cat.CategoryName)

	s.Require().NoError(s.client.Categories.Delete(context.Background(), 4))
	s.Equal([]string{"PUT /api/v1/categories/4", "DELETE /api/v1/categories/4"}, calls)
}

func (s *ClientTestSuite) TestBearerTokenOnlyWhenConfigured() {
	var auth string
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]interface{}{"employeeId": 1})
	}

	client := s.newClient("secret-token")
	_, err := client.Employees.Get(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("Bearer secret-token", auth)
}

func (s *ClientTestSuite) TestNotFoundDecodesErrorBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Customer not found"})
	}

	_, err := s.client.Customers.Get(context.Background(), 99)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrNotFound))
	s.False(errors.Is(err, ErrServer))

	apiErr, ok := AsAPIError(err)
	s.Require().True(ok)
	s.Equal(http.StatusNotFound, apiErr.StatusCode)
	s.Equal(KindNotFound, apiErr.Kind)
	s.Equal("Customer not found", apiErr.Message)
	s.Equal("/customers/99", apiErr.Path)
}

func (s *ClientTestSuite) TestValidationDetailsDecoded() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid input",
			"details": map[string]string{"price": "must be positive"},
		})
	}

	_, err := s.client.Products.Create(context.Background(), &models.CreateProductRequest{ProductName: "x"})
	apiErr, ok := AsAPIError(err)
	s.Require().True(ok)
	s.Equal(KindValidation, apiErr.Kind)
	s.Equal("Invalid input", apiErr.Message)
	s.Equal(map[string]string{"price": "must be positive"}, apiErr.Fields)
}

func (s *ClientTestSuite) TestUndecodableBodyFallsBackToStatusText() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, "<html>conflict</html>")
	}

	_, err := s.client.OrderDetails.Create(context.Background(), &models.CreateOrderDetailRequest{})
	apiErr, ok := AsAPIError(err)
	s.Require().True(ok)
	s.Equal(KindConflict, apiErr.Kind)
	s.Equal("Conflict", apiErr.Message)
	s.True(errors.Is(err, ErrConflict))
}

func (s *ClientTestSuite) TestGetRetriesServerErrors() {
	var calls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"categoryId": 1, "categoryName": "Sneakers"}})
	}

	cats, err := s.client.Categories.List(context.Background())
	s.Require().NoError(err)
	s.Len(cats, 1)
	s.Equal(int32(3), atomic.LoadInt32(&calls))
}

func (s *ClientTestSuite) TestGetGivesUpAfterMaxTries() {
	var calls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}

	_, err := s.client.Orders.List(context.Background())
	s.Require().Error(err)
	s.True(errors.Is(err, ErrServer))
	s.Equal(int32(3), atomic.LoadInt32(&calls))
}

func (s *ClientTestSuite) TestGetDoesNotRetryClientErrors() {
	var calls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}

	_, err := s.client.Orders.Get(context.Background(), 1)
	s.True(errors.Is(err, ErrForbidden))
	s.Equal(int32(1), atomic.LoadInt32(&calls))
}

func (s *ClientTestSuite) TestMutationsAreNotRetried() {
	var calls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}

	_, err := s.client.Orders.Create(context.Background(), &models.CreateOrderRequest{})
	s.True(errors.Is(err, ErrServer))
	s.Equal(int32(1), atomic.LoadInt32(&calls))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestTransportErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(config.BackendConfig{
		BaseURL:       url,
		Timeout:       config.Duration{Duration: time.Second},
		RetryMaxTries: 1,
	}, nil)

	_, err := client.Categories.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, "No response from server", apiErr.Message)
}

func TestKindForStatus(t *testing.T) {
	cases := map[int]Kind{
		400: KindValidation,
		422: KindValidation,
		401: KindUnauthorized,
		403: KindForbidden,
		404: KindNotFound,
		409: KindConflict,
		500: KindServer,
		503: KindServer,
		418: KindUnknown,
	}
	for status, want := range cases {
		assert.Equal(t, want, KindForStatus(status), "status %d", status)
	}
}
