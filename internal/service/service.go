// Package service implements the table-side operations on top of the
// catalogue, the session store and the repositories.
package service

import (
	"context"

	"tableside/internal/admin"
	"tableside/internal/assistant"
	"tableside/internal/catalog"
	"tableside/internal/loyalty"
	"tableside/internal/model"

	"github.com/google/uuid"
)

// Menu is the read side of the catalogue used by the services.
type Menu interface {
	Overview() model.MenuOverview
	Categories(g catalog.Group) []model.CategoryView
	ByCategory(name string) []model.MenuItem
	ByID(id string) (model.MenuItem, bool)
	Available() []model.MenuItem
	Currency() string
}

// MenuService browses the catalogue.
type MenuService interface {
	Overview() model.MenuOverview

	// Categories lists the categories of a group; an empty group means all.
	Categories(group string) ([]model.CategoryView, error)

	// Items returns the available items of a category; an empty category means all.
	Items(category string) ([]model.MenuItem, error)

	Item(id string) (model.MenuItem, error)
}

// SessionService manages table sessions and their carts.
type SessionService interface {
	Start(ctx context.Context, req *model.StartSessionRequest) (model.SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (model.SessionView, error)
	Navigate(ctx context.Context, id uuid.UUID, screen model.Screen) (model.SessionView, error)
	Login(ctx context.Context, id uuid.UUID, req *model.LoginRequest) (model.SessionView, error)
	Loyalty(ctx context.Context, id uuid.UUID) (loyalty.Card, error)

	Cart(ctx context.Context, id uuid.UUID) (model.CartView, error)
	AddToCart(ctx context.Context, id uuid.UUID, req *model.AddToCartRequest) (model.CartView, error)
	UpdateCart(ctx context.Context, id uuid.UUID, itemID string, quantity int) (model.CartView, error)
	RemoveFromCart(ctx context.Context, id uuid.UUID, itemID string) (model.CartView, error)
	ClearCart(ctx context.Context, id uuid.UUID) (model.CartView, error)
}

// OrderService confirms carts into kitchen tickets.
type OrderService interface {
	// Confirm persists the cart as a ticket, sends it to the kitchen and
	// applies the confirmation to the session.
	Confirm(ctx context.Context, sessionID uuid.UUID) (*model.OrderConfirmation, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
}

// ComplaintService files customer complaints.
type ComplaintService interface {
	Submit(ctx context.Context, sessionID uuid.UUID, req *model.ComplaintRequest) (*model.Complaint, error)
	ListRecent(ctx context.Context, limit int) ([]model.Complaint, error)
}

// BillService records bill requests.
type BillService interface {
	Request(ctx context.Context, sessionID uuid.UUID, req *model.BillRequestPayload) (*model.BillRequest, error)
	ListRecent(ctx context.Context, limit int) ([]model.BillRequest, error)
}

// AssistantService runs the scripted assistant against a session's memory.
type AssistantService interface {
	Greeting(ctx context.Context, sessionID uuid.UUID) (assistant.Reply, error)
	Message(ctx context.Context, sessionID uuid.UUID, text string) (assistant.Reply, error)
}

// AdminService exposes the menu editor behind the password gate.
type AdminService interface {
	Login(client, password string) (admin.Token, error)
	Logout(token string)
	Authorize(token string) error

	Menu() catalog.Document
	AddCategory(id, name string) (catalog.Category, error)
	UpdateCategory(id, name string) (catalog.Category, error)
	DeleteCategory(id string) error
	AddItem(categoryID string, it catalog.Item) (catalog.Item, error)
	UpdateItem(categoryID, name string, it catalog.Item) (catalog.Item, error)
	DeleteItem(categoryID, name string) error

	Export() ([]byte, error)
	Publish(ctx context.Context) (string, error)
}
