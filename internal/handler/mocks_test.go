package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"tableside/internal/admin"
	"tableside/internal/assistant"
	"tableside/internal/catalog"
	"tableside/internal/loyalty"
	"tableside/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// serve routes a single request through a chi router holding one pattern.
func serve(method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type MockMenuService struct{ mock.Mock }

func (m *MockMenuService) Overview() model.MenuOverview {
	return m.Called().Get(0).(model.MenuOverview)
}

func (m *MockMenuService) Categories(group string) ([]model.CategoryView, error) {
	args := m.Called(group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryView), args.Error(1)
}

func (m *MockMenuService) Items(category string) ([]model.MenuItem, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuService) Item(id string) (model.MenuItem, error) {
	args := m.Called(id)
	return args.Get(0).(model.MenuItem), args.Error(1)
}

type MockSessionService struct{ mock.Mock }

func (m *MockSessionService) view(args mock.Arguments) (model.SessionView, error) {
	return args.Get(0).(model.SessionView), args.Error(1)
}

func (m *MockSessionService) cart(args mock.Arguments) (model.CartView, error) {
	return args.Get(0).(model.CartView), args.Error(1)
}

func (m *MockSessionService) Start(ctx context.Context, req *model.StartSessionRequest) (model.SessionView, error) {
	return m.view(m.Called(ctx, req))
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (model.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) Navigate(ctx context.Context, id uuid.UUID, screen model.Screen) (model.SessionView, error) {
	return m.view(m.Called(ctx, id, screen))
}

func (m *MockSessionService) Login(ctx context.Context, id uuid.UUID, req *model.LoginRequest) (model.SessionView, error) {
	return m.view(m.Called(ctx, id, req))
}

func (m *MockSessionService) Loyalty(ctx context.Context, id uuid.UUID) (loyalty.Card, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(loyalty.Card), args.Error(1)
}

func (m *MockSessionService) Cart(ctx context.Context, id uuid.UUID) (model.CartView, error) {
	return m.cart(m.Called(ctx, id))
}

func (m *MockSessionService) AddToCart(ctx context.Context, id uuid.UUID, req *model.AddToCartRequest) (model.CartView, error) {
	return m.cart(m.Called(ctx, id, req))
}

func (m *MockSessionService) UpdateCart(ctx context.Context, id uuid.UUID, itemID string, quantity int) (model.CartView, error) {
	return m.cart(m.Called(ctx, id, itemID, quantity))
}

func (m *MockSessionService) RemoveFromCart(ctx context.Context, id uuid.UUID, itemID string) (model.CartView, error) {
	return m.cart(m.Called(ctx, id, itemID))
}

func (m *MockSessionService) ClearCart(ctx context.Context, id uuid.UUID) (model.CartView, error) {
	return m.cart(m.Called(ctx, id))
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Confirm(ctx context.Context, sessionID uuid.UUID) (*model.OrderConfirmation, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderConfirmation), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

type MockComplaintService struct{ mock.Mock }

func (m *MockComplaintService) Submit(ctx context.Context, sessionID uuid.UUID, req *model.ComplaintRequest) (*model.Complaint, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Complaint), args.Error(1)
}

func (m *MockComplaintService) ListRecent(ctx context.Context, limit int) ([]model.Complaint, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

type MockBillService struct{ mock.Mock }

func (m *MockBillService) Request(ctx context.Context, sessionID uuid.UUID, req *model.BillRequestPayload) (*model.BillRequest, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BillRequest), args.Error(1)
}

func (m *MockBillService) ListRecent(ctx context.Context, limit int) ([]model.BillRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BillRequest), args.Error(1)
}

type MockAssistantService struct{ mock.Mock }

func (m *MockAssistantService) Greeting(ctx context.Context, sessionID uuid.UUID) (assistant.Reply, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(assistant.Reply), args.Error(1)
}

func (m *MockAssistantService) Message(ctx context.Context, sessionID uuid.UUID, text string) (assistant.Reply, error) {
	args := m.Called(ctx, sessionID, text)
	return args.Get(0).(assistant.Reply), args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) Login(client, password string) (admin.Token, error) {
	args := m.Called(client, password)
	return args.Get(0).(admin.Token), args.Error(1)
}

func (m *MockAdminService) Logout(token string) { m.Called(token) }

func (m *MockAdminService) Authorize(token string) error { return m.Called(token).Error(0) }

func (m *MockAdminService) Menu() catalog.Document {
	return m.Called().Get(0).(catalog.Document)
}

func (m *MockAdminService) AddCategory(id, name string) (catalog.Category, error) {
	args := m.Called(id, name)
	return args.Get(0).(catalog.Category), args.Error(1)
}

func (m *MockAdminService) UpdateCategory(id, name string) (catalog.Category, error) {
	args := m.Called(id, name)
	return args.Get(0).(catalog.Category), args.Error(1)
}

func (m *MockAdminService) DeleteCategory(id string) error { return m.Called(id).Error(0) }

func (m *MockAdminService) AddItem(categoryID string, it catalog.Item) (catalog.Item, error) {
	args := m.Called(categoryID, it)
	return args.Get(0).(catalog.Item), args.Error(1)
}

func (m *MockAdminService) UpdateItem(categoryID, name string, it catalog.Item) (catalog.Item, error) {
	args := m.Called(categoryID, name, it)
	return args.Get(0).(catalog.Item), args.Error(1)
}

func (m *MockAdminService) DeleteItem(categoryID, name string) error {
	return m.Called(categoryID, name).Error(0)
}

func (m *MockAdminService) Export() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAdminService) Publish(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
