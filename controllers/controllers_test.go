package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/kds"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/router"
	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	engine *gin.Engine
	events *kds.Recorder
	tokens *utils.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.NewTestDB(t)
	events := kds.NewRecorder()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	menu := database.NewMenuStore(db)

	orders := services.NewOrderService(database.NewOrderStore(db), menu, events, decimal.RequireFromString("0.14")).
		WithPinGenerator(func() (string, error) { return "0427", nil })

	engine := router.SetupRouter(router.Deps{
		Orders:       orders,
		Reservations: services.NewReservationService(database.NewReservationStore(db), events),
		Staff:        services.NewStaffService(database.NewStaffStore(db), tokens).WithHashCost(bcrypt.MinCost),
		Menu:         menu,
		Tokens:       tokens,
		Hub:          kds.NewHub(8),
		CORSOrigin:   "*",
	})
	return &testServer{engine: engine, events: events, tokens: tokens}
}

func (s *testServer) token(t *testing.T, role models.Role, id uint) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken(id, string(role))
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeOrder(t *testing.T, env envelope) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	return order
}

func deliveryOrderBody() gin.H {
	return gin.H{
		"serviceMode":     "delivery",
		"deliveryAddress": "12 Nile St, Cairo",
		"items": []gin.H{
			{"id": 1, "quantity": 2},
			{"id": 2, "quantity": 1},
		},
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    gin.H
		wantErr string
	}{
		{
			name:    "empty items",
			body:    gin.H{"serviceMode": "dine-in", "items": []gin.H{}},
			wantErr: "Order items are required",
		},
		{
			name:    "delivery without address",
			body:    gin.H{"serviceMode": "delivery", "items": []gin.H{{"id": 1, "quantity": 1}}},
			wantErr: "Delivery address is required for delivery orders",
		},
		{
			name:    "unknown service mode",
			body:    gin.H{"serviceMode": "drive-thru", "items": []gin.H{{"id": 1, "quantity": 1}}},
			wantErr: "Invalid service mode",
		},
		{
			name:    "unknown menu item",
			body:    gin.H{"serviceMode": "dine-in", "items": []gin.H{{"id": 999, "quantity": 1}}},
			wantErr: "Unknown menu item 999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodPost, "/orders", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Status)
			assert.Contains(t, env.Error, tt.wantErr)
		})
	}
	assert.Empty(t, s.events.Messages())
}

func TestCreateDeliveryOrderReturnsPinToCustomerOnly(t *testing.T) {
	s := newTestServer(t)

	body := deliveryOrderBody()
	body["subtotal"] = 500
	body["vat"] = 70
	body["total"] = 570
	w, env := s.do(t, http.MethodPost, "/orders", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decodeOrder(t, env)
	require.NotNil(t, order.ConfirmationPin)
	assert.Regexp(t, `^\d{4}$`, *order.ConfirmationPin)
	assert.Equal(t, models.ServiceDelivery, order.ServiceMode)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(570)))

	_, env = s.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), "", nil)
	customer := decodeOrder(t, env)
	require.NotNil(t, customer.ConfirmationPin)
	assert.Equal(t, "0427", *customer.ConfirmationPin)

	_, env = s.do(t, http.MethodGet, fmt.Sprintf("/delivery/orders/%d", order.ID), s.token(t, models.RoleDelivery, 3), nil)
	staff := decodeOrder(t, env)
	assert.Nil(t, staff.ConfirmationPin)
	assert.NotContains(t, string(env.Data), "confirmation_pin")

	newOrder := s.events.Find(kds.EventNewOrder)
	require.Len(t, newOrder, 1)
	raw, err := json.Marshal(newOrder[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "confirmation_pin")
}

func TestCreateOrderRejectsMismatchedTotals(t *testing.T) {
	s := newTestServer(t)
	body := deliveryOrderBody()
	body["total"] = 100

	w, env := s.do(t, http.MethodPost, "/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "does not match")
}

func TestStaffRoutesRequireRole(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/kitchen/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Status)

	w, _ = s.do(t, http.MethodGet, "/kitchen/orders", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(t, http.MethodGet, "/kitchen/orders", s.token(t, models.RoleWaiter, 2), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, env.Error, "kitchen")

	w, _ = s.do(t, http.MethodGet, "/kitchen/orders", s.token(t, models.RoleKitchen, 1), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/kitchen/orders", s.token(t, models.RoleManager, 4), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/admin/orders", s.token(t, models.RoleKitchen, 1), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestKitchenStatusEndpoints(t *testing.T) {
	s := newTestServer(t)
	kitchen := s.token(t, models.RoleKitchen, 1)

	_, env := s.do(t, http.MethodPost, "/orders", "", deliveryOrderBody())
	order := decodeOrder(t, env)

	w, env := s.do(t, http.MethodPut, fmt.Sprintf("/kitchen/orders/%d/status", order.ID), kitchen, gin.H{"status": "served"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "served")

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/kitchen/orders/%d/status", order.ID), kitchen, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "Cannot mark order as ready. Some items are not yet complete.")

	w, _ = s.do(t, http.MethodPut, "/kitchen/order-items/9999/status", kitchen, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/kitchen/order-items/%d/status", order.Items[0].ID), kitchen, gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPut, "/kitchen/orders/abc/status", kitchen, gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/kitchen/orders/%d/status", order.ID), kitchen, gin.H{"status": "preparing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.OrderPreparing, decodeOrder(t, env).Status)

	_, env = s.do(t, http.MethodGet, "/kitchen/orders", kitchen, nil)
	var queue []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &queue))
	require.Len(t, queue, 1)
	assert.Nil(t, queue[0].ConfirmationPin)
	assert.Equal(t, "Crispy French Fries", queue[0].Items[0].MenuItemName)
}

func TestStaffAccountFlow(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/staff/register", "", gin.H{
		"name": "Mona", "email": "Mona@DeliciousBites.test", "password": "secret1", "role": "delivery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, string(env.Data), "secret1")

	w, env = s.do(t, http.MethodPost, "/staff/register", "", gin.H{
		"name": "Mona", "email": "mona@deliciousbites.test", "password": "secret1", "role": "delivery",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", env.Error)

	w, env = s.do(t, http.MethodPost, "/staff/login", "", gin.H{"email": "mona@deliciousbites.test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", env.Error)

	w, env = s.do(t, http.MethodPost, "/staff/login", "", gin.H{"email": "mona@deliciousbites.test", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string      `json:"token"`
		Role  models.Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, models.RoleDelivery, login.Role)
	require.NotEmpty(t, login.Token)

	w, _ = s.do(t, http.MethodGet, "/delivery/orders", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/staff/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "mona@deliciousbites.test")

	w, _ = s.do(t, http.MethodPost, "/staff/logout", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/staff/profile", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservationEndpoints(t *testing.T) {
	s := newTestServer(t)
	reception := s.token(t, models.RoleReception, 5)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	w, env := s.do(t, http.MethodPost, "/reservations", "", gin.H{
		"userId": 7, "name": "Omar", "phone": "01000000000", "partySize": 4, "date": date, "time": "19:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "confirmed", created.Status)

	w, _ = s.do(t, http.MethodPost, "/reservations", "", gin.H{
		"name": "Omar", "phone": "0100", "partySize": 0, "date": date, "time": "19:30",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/reservations/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/reservations/user/7", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	w, _ = s.do(t, http.MethodGet, "/reservations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(t, http.MethodGet, "/reservations/dine-in", reception, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var upcoming []models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &upcoming))
	assert.Len(t, upcoming, 1)

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/reservations/%d", created.ID), reception, gin.H{"status": "seated"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "seated")

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/reservations/%d", created.ID), reception, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/reservations/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []string{
		kds.EventReservationCreated,
		kds.EventReservationUpdated,
		kds.EventReservationDeleted,
	}, s.events.Events())
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	manager := s.token(t, models.RoleManager, 4)

	body := deliveryOrderBody()
	body["serviceMode"] = "dine_in"
	delete(body, "deliveryAddress")
	_, env := s.do(t, http.MethodPost, "/orders", "", body)
	order := decodeOrder(t, env)
	assert.Equal(t, models.ServiceDineIn, order.ServiceMode)

	w, _ := s.do(t, http.MethodPut, fmt.Sprintf("/admin/orders/%d/paid", order.ID), manager, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/admin/orders/%d/paid", order.ID), manager, gin.H{"paid": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decodeOrder(t, env).Paid)

	w, env = s.do(t, http.MethodGet, "/admin/orders?type=dine-in&status=pending&timeRange=today", manager, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var listed []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Len(t, listed, 1)

	w, _ = s.do(t, http.MethodGet, "/admin/orders?timeRange=decade", manager, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/admin/orders/summary", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary database.OrderSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.EqualValues(t, 1, summary.Total)

	w, env = s.do(t, http.MethodGet, "/admin/revenue?timeRange=all", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report services.RevenueReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.Today.Equal(order.Total), report.Today.String())

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/admin/orders/%d/cancel", order.ID), manager, gin.H{"reason": "customer left"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.OrderCancelled, decodeOrder(t, env).Status)

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", order.ID), manager, gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Error)

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/admin/orders/%d/history", order.ID), manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.OrderStatusHistory
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.NotEmpty(t, history)
	last := history[len(history)-1]
	assert.Equal(t, models.OrderCancelled, last.ToStatus)
	assert.Equal(t, "customer left", last.Note)
}

func TestAdminTransitions(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/admin/transitions", s.token(t, models.RoleManager, 4), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `{"from":"completed","to":"out-for-delivery","actor":"delivery"}`)
}

func TestMenuEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.MenuItem
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 15)

	w, env = s.do(t, http.MethodGet, "/menu/desserts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var desserts []models.MenuItem
	require.NoError(t, json.Unmarshal(env.Data, &desserts))
	assert.Len(t, desserts, 2)
}
