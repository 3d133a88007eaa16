package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"tableside/internal/loyalty"
	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_Start(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockSessionService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Valid scan",
			body: `{"tableNumber":"12","language":"fr","entryPath":"/table/12"}`,
			setupMock: func(m *MockSessionService) {
				m.On("Start", mock.Anything, &model.StartSessionRequest{
					TableNumber: "12", Language: model.LanguageFrench, EntryPath: "/table/12",
				}).Return(model.SessionView{ID: id, TableNumber: "12", Screen: model.ScreenMenu}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed body",
			body:           `{"tableNumber":`,
			setupMock:      func(m *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name: "Bad table",
			body: `{"tableNumber":""}`,
			setupMock: func(m *MockSessionService) {
				m.On("Start", mock.Anything, mock.Anything).Return(model.SessionView{}, model.ErrInvalidTable)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSessionService)
			tt.setupMock(svc)
			h := NewSessionHandler(svc, zerolog.Nop())

			w := serve(http.MethodPost, "/api/sessions", "/api/sessions", tt.body, h.Start)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			} else {
				var view model.SessionView
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
				assert.Equal(t, id, view.ID)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_Get(t *testing.T) {
	id := uuid.New()
	svc := new(MockSessionService)
	svc.On("Get", mock.Anything, id).Return(model.SessionView{ID: id}, nil)
	svc.On("Get", mock.Anything, mock.Anything).Return(model.SessionView{}, model.ErrSessionNotFound)
	h := NewSessionHandler(svc, zerolog.Nop())

	w := serve(http.MethodGet, "/api/sessions/{sessionID}", "/api/sessions/"+id.String(), "", h.Get)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(http.MethodGet, "/api/sessions/{sessionID}", "/api/sessions/"+uuid.NewString(), "", h.Get)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(http.MethodGet, "/api/sessions/{sessionID}", "/api/sessions/not-a-uuid", "", h.Get)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeSessionNotFound, decodeError(t, w).Error)
	svc.AssertNumberOfCalls(t, "Get", 2)
}

func TestSessionHandler_NavigateAndLogin(t *testing.T) {
	id := uuid.New()
	svc := new(MockSessionService)
	svc.On("Navigate", mock.Anything, id, model.ScreenCart).Return(model.SessionView{ID: id, Screen: model.ScreenCart}, nil)
	svc.On("Navigate", mock.Anything, id, model.Screen("kitchen")).Return(model.SessionView{}, model.ErrInvalidScreen)
	svc.On("Login", mock.Anything, id, &model.LoginRequest{Name: "Amira", Method: model.LoginPhone}).
		Return(model.SessionView{ID: id, User: &model.User{Name: "Amira", Points: 120}}, nil)
	h := NewSessionHandler(svc, zerolog.Nop())
	base := "/api/sessions/" + id.String()

	w := serve(http.MethodPut, "/api/sessions/{sessionID}/screen", base+"/screen", `{"screen":"cart"}`, h.Navigate)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(http.MethodPut, "/api/sessions/{sessionID}/screen", base+"/screen", `{"screen":"kitchen"}`, h.Navigate)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.MethodPost, "/api/sessions/{sessionID}/login", base+"/login", `{"name":"Amira","method":"phone"}`, h.Login)
	require.Equal(t, http.StatusOK, w.Code)
	var view model.SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 120, view.User.Points)
}

func TestSessionHandler_Loyalty(t *testing.T) {
	id := uuid.New()
	svc := new(MockSessionService)
	svc.On("Loyalty", mock.Anything, id).Return(loyalty.CardFor(150), nil).Once()
	svc.On("Loyalty", mock.Anything, id).Return(loyalty.Card{}, model.ErrNotLoggedIn)
	h := NewSessionHandler(svc, zerolog.Nop())
	target := "/api/sessions/" + id.String() + "/loyalty"

	w := serve(http.MethodGet, "/api/sessions/{sessionID}/loyalty", target, "", h.Loyalty)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(http.MethodGet, "/api/sessions/{sessionID}/loyalty", target, "", h.Loyalty)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionHandler_Cart(t *testing.T) {
	id := uuid.New()
	cart := model.CartView{ItemCount: 2, Total: decimal.RequireFromString("29"), Display: "29.000 TND"}

	tests := []struct {
		name           string
		method         string
		pattern        string
		path           string
		body           string
		setupMock      func(*MockSessionService)
		handler        func(*SessionHandler) func(http.ResponseWriter, *http.Request)
		expectedStatus int
	}{
		{
			name:    "View",
			method:  http.MethodGet,
			pattern: "/api/sessions/{sessionID}/cart",
			path:    "/cart",
			setupMock: func(m *MockSessionService) {
				m.On("Cart", mock.Anything, id).Return(cart, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.Cart },
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Clear",
			method:  http.MethodDelete,
			pattern: "/api/sessions/{sessionID}/cart",
			path:    "/cart",
			setupMock: func(m *MockSessionService) {
				m.On("ClearCart", mock.Anything, id).Return(model.CartView{}, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.ClearCart },
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Add",
			method:  http.MethodPost,
			pattern: "/api/sessions/{sessionID}/cart/items",
			path:    "/cart/items",
			body:    `{"itemId":"501","quantity":2,"option":"petit"}`,
			setupMock: func(m *MockSessionService) {
				m.On("AddToCart", mock.Anything, id, &model.AddToCartRequest{ItemID: "501", Quantity: 2, Option: "petit"}).Return(cart, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.AddToCart },
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Add unavailable",
			method:  http.MethodPost,
			pattern: "/api/sessions/{sessionID}/cart/items",
			path:    "/cart/items",
			body:    `{"itemId":"pizzas-Calzone","quantity":1}`,
			setupMock: func(m *MockSessionService) {
				m.On("AddToCart", mock.Anything, id, mock.Anything).Return(model.CartView{}, model.ErrItemUnavailable)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.AddToCart },
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "Set quantity",
			method:  http.MethodPut,
			pattern: "/api/sessions/{sessionID}/cart/items/{itemID}",
			path:    "/cart/items/501",
			body:    `{"quantity":0}`,
			setupMock: func(m *MockSessionService) {
				m.On("UpdateCart", mock.Anything, id, "501", 0).Return(model.CartView{}, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.UpdateCartItem },
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Set quantity of an id with an escaped slash",
			method:  http.MethodPut,
			pattern: "/api/sessions/{sessionID}/cart/items/{itemID}",
			path:    "/cart/items/cafes-Caf%C3%A9%201%2F2",
			body:    `{"quantity":5}`,
			setupMock: func(m *MockSessionService) {
				m.On("UpdateCart", mock.Anything, id, "cafes-Café 1/2", 5).Return(cart, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.UpdateCartItem },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Set quantity without value",
			method:         http.MethodPut,
			pattern:        "/api/sessions/{sessionID}/cart/items/{itemID}",
			path:           "/cart/items/501",
			body:           `{}`,
			setupMock:      func(m *MockSessionService) {},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.UpdateCartItem },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "Remove",
			method:  http.MethodDelete,
			pattern: "/api/sessions/{sessionID}/cart/items/{itemID}",
			path:    "/cart/items/501",
			setupMock: func(m *MockSessionService) {
				m.On("RemoveFromCart", mock.Anything, id, "501").Return(model.CartView{}, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.RemoveCartItem },
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Remove an id with an escaped slash",
			method:  http.MethodDelete,
			pattern: "/api/sessions/{sessionID}/cart/items/{itemID}",
			path:    "/cart/items/cafes-Caf%C3%A9%201%2F2",
			setupMock: func(m *MockSessionService) {
				m.On("RemoveFromCart", mock.Anything, id, "cafes-Café 1/2").Return(model.CartView{}, nil)
			},
			handler:        func(h *SessionHandler) func(http.ResponseWriter, *http.Request) { return h.RemoveCartItem },
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSessionService)
			tt.setupMock(svc)
			h := NewSessionHandler(svc, zerolog.Nop())

			w := serve(tt.method, tt.pattern, "/api/sessions/"+id.String()+tt.path, tt.body, tt.handler(h))

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
