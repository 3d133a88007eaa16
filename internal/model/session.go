package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Language is the interface language picked at scan time.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case LanguageFrench, LanguageArabic, LanguageEnglish:
		return true
	}
	return false
}

// Screen is the screen a table session is currently showing.
type Screen string

const (
	ScreenScan       Screen = "scan"
	ScreenMenu       Screen = "menu"
	ScreenCart       Screen = "cart"
	ScreenComplaints Screen = "complaints"
	ScreenBill       Screen = "bill"
	ScreenAdmin      Screen = "admin"
)

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	switch s {
	case ScreenScan, ScreenMenu, ScreenCart, ScreenComplaints, ScreenBill, ScreenAdmin:
		return true
	}
	return false
}

// LoginMethod tags how a customer identified themselves.
type LoginMethod string

const (
	LoginEmail    LoginMethod = "email"
	LoginPhone    LoginMethod = "phone"
	LoginFacebook LoginMethod = "facebook"
	LoginGoogle   LoginMethod = "google"
)

// Valid reports whether m is a known login method.
func (m LoginMethod) Valid() bool {
	switch m {
	case LoginEmail, LoginPhone, LoginFacebook, LoginGoogle:
		return true
	}
	return false
}

// User is the optional logged-in customer of a table session.
type User struct {
	Name        string      `json:"name"`
	Points      int         `json:"points"`
	LoginMethod LoginMethod `json:"loginMethod"`
}

// CartLine is one line of a cart as returned to clients.
type CartLine struct {
	Item      MenuItem        `json:"item"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView is the client representation of a cart.
type CartView struct {
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
	Display   string          `json:"display"`
}

// SessionView is the client representation of a table session.
type SessionView struct {
	ID          uuid.UUID `json:"id"`
	TableNumber string    `json:"tableNumber"`
	Language    Language  `json:"language"`
	Screen      Screen    `json:"screen"`
	User        *User     `json:"user,omitempty"`
	Cart        CartView  `json:"cart"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StartSessionRequest is the payload produced by a QR scan.
type StartSessionRequest struct {
	TableNumber string   `json:"tableNumber"`
	Language    Language `json:"language"`
	EntryPath   string   `json:"entryPath,omitempty"`
}

// NavigateRequest changes the current screen.
type NavigateRequest struct {
	Screen Screen `json:"screen"`
}

// LoginRequest identifies a customer at the table.
type LoginRequest struct {
	Name   string      `json:"name"`
	Method LoginMethod `json:"method"`
}

// AddToCartRequest adds an item to the cart.
type AddToCartRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
	Option   string `json:"option,omitempty"`
}

// UpdateCartRequest overwrites the quantity of a cart line.
// Quantity is a pointer so that an omitted field is not read as a removal.
type UpdateCartRequest struct {
	Quantity *int `json:"quantity"`
}
