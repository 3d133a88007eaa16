// Package session holds per-table visit state and the reducers that mutate it.
package session

import (
	"strings"
	"time"
	"unicode/utf8"

	"tableside/internal/assistant"
	"tableside/internal/cart"
	"tableside/internal/loyalty"
	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxTableNumberLen = 10

// Session is one table visit, from QR scan until expiry.
type Session struct {
	ID          uuid.UUID
	TableNumber string
	Language    model.Language
	Screen      model.Screen
	User        *model.User
	Cart        *cart.Ledger
	Assistant   assistant.Memory
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New starts a session from a scan. The entry path selects the admin screen
// when it is "/admin" or "#admin".
func New(id uuid.UUID, tableNumber string, lang model.Language, entryPath string, now time.Time) (*Session, error) {
	table := strings.TrimSpace(tableNumber)
	if table == "" || utf8.RuneCountInString(table) > maxTableNumberLen {
		return nil, model.ErrInvalidTable
	}
	if lang == "" {
		lang = model.LanguageFrench
	}
	if !lang.Valid() {
		return nil, model.ErrInvalidLanguage
	}

	screen := model.ScreenMenu
	if p := strings.TrimSpace(entryPath); p == "/admin" || p == "#admin" {
		screen = model.ScreenAdmin
	}

	return &Session{
		ID:          id,
		TableNumber: table,
		Language:    lang,
		Screen:      screen,
		Cart:        cart.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Navigate switches the current screen. Scan is not a target: rescanning
// starts a new session.
func (s *Session) Navigate(screen model.Screen) error {
	if !screen.Valid() || screen == model.ScreenScan {
		return model.ErrInvalidScreen
	}
	s.Screen = screen
	return nil
}

// Login attaches a customer with an initial balance.
func (s *Session) Login(name string, method model.LoginMethod, points int) error {
	name = strings.TrimSpace(name)
	switch method {
	case model.LoginEmail, model.LoginPhone:
		if name == "" {
			return model.ErrInvalidLogin
		}
	case model.LoginFacebook:
		if name == "" {
			name = "Utilisateur Facebook"
		}
	case model.LoginGoogle:
		if name == "" {
			name = "Utilisateur Google"
		}
	default:
		return model.ErrInvalidLogin
	}
	if points < 0 {
		points = 0
	}

	s.User = &model.User{Name: name, Points: points, LoginMethod: method}
	return nil
}

// AddToCart adds quantity units of item. Unavailable items and quantities
// below one are rejected.
func (s *Session) AddToCart(item model.MenuItem, quantity int, note string) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}
	if !item.Available {
		return model.ErrItemUnavailable
	}
	s.Cart.Add(item, quantity, strings.TrimSpace(note))
	return nil
}

// UpdateCart overwrites the quantity of a line; zero removes it and unknown
// ids are ignored.
func (s *Session) UpdateCart(itemID string, quantity int) error {
	if quantity < 0 {
		return model.ErrNegativeQuantity
	}
	s.Cart.SetQuantity(itemID, quantity)
	return nil
}

// RemoveFromCart deletes a line if present.
func (s *Session) RemoveFromCart(itemID string) {
	s.Cart.Remove(itemID)
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.Cart.Clear()
}

// Confirmation is the outcome of confirming the cart.
type Confirmation struct {
	Lines        []cart.Entry
	Total        decimal.Decimal
	PointsEarned int
	User         *model.User
}

// ConfirmOrder credits floor(total) points to a logged-in customer, clears
// the cart and returns to the menu. It never creates a user.
func (s *Session) ConfirmOrder() Confirmation {
	total := s.Cart.Total()
	c := Confirmation{
		Lines:        s.Cart.Entries(),
		Total:        total,
		PointsEarned: loyalty.PointsFor(total),
	}

	if s.User != nil {
		s.User.Points += c.PointsEarned
		u := *s.User
		c.User = &u
	}

	s.Cart.Clear()
	s.Screen = model.ScreenMenu
	return c
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Cart = s.Cart.Clone()
	out.Assistant = s.Assistant.Clone()
	return &out
}

// View renders the session for clients.
func (s *Session) View() model.SessionView {
	v := model.SessionView{
		ID:          s.ID,
		TableNumber: s.TableNumber,
		Language:    s.Language,
		Screen:      s.Screen,
		Cart:        s.Cart.View(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.User != nil {
		u := *s.User
		v.User = &u
	}
	return v
}
