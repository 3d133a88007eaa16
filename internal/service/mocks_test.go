package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableside/internal/catalog"
	"tableside/internal/kitchen"
	"tableside/internal/model"
	"tableside/internal/session"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMenu = `{"restaurant":{"name":"Versailles Café","currency":"TND","categories":[
	{"id":"pizzas","name":"PIZZAS","items":[
		{"name":"Reine","description":"Jambon, champignons","price":14500,"image":"r.jpg"},
		{"name":"Calzone","price":16000,"image":"c.jpg","available":false}
	]},
	{"id":"jus","name":"JUS FRAIS","items":[
		{"code":501,"name":"Citronnade","prices":{"petit":3000,"grand":4500},"image":"j.jpg"}
	]}
]}}`

var t0 = time.Date(2026, 5, 1, 13, 0, 0, 0, time.UTC)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc, err := catalog.Parse(strings.NewReader(testMenu))
	require.NoError(t, err)
	c, err := catalog.New(doc)
	require.NoError(t, err)
	return c
}

func newTestStore() *session.Store {
	return session.NewStore(time.Hour, zerolog.Nop(), session.WithClock(func() time.Time { return t0 }))
}

// startSession opens table 7 and returns its id.
func startSession(t *testing.T, svc SessionService) uuid.UUID {
	t.Helper()
	view, err := svc.Start(context.Background(), &model.StartSessionRequest{TableNumber: "7", Language: model.LanguageFrench})
	require.NoError(t, err)
	return view.ID
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *MockOrderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	return m.Called(ctx, tx, lines).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockTx) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

// Stubs to satisfy pgx.Tx; the services never call them.
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// MockComplaintRepository is a mock implementation of ComplaintRepository.
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, c *model.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockComplaintRepository) ListRecent(ctx context.Context, limit int) ([]model.Complaint, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

// MockBillRepository is a mock implementation of BillRepository.
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, b *model.BillRequest) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBillRepository) ListRecent(ctx context.Context, limit int) ([]model.BillRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BillRequest), args.Error(1)
}

// MockKitchen is a mock implementation of kitchen.Publisher.
type MockKitchen struct {
	mock.Mock
}

func (m *MockKitchen) Publish(ctx context.Context, t kitchen.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockKitchen) Close() error { return nil }

// MockNotifier is a mock implementation of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Complaint(ctx context.Context, c model.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockNotifier) Bill(ctx context.Context, b model.BillRequest, currency string) error {
	return m.Called(ctx, b, currency).Error(0)
}
