package session

import (
	"testing"
	"time"

	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC)

func menuItem(id, price string) model.MenuItem {
	return model.MenuItem{ID: id, Name: "Item " + id, Price: decimal.RequireFromString(price), Available: true}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(uuid.New(), "12", model.LanguageFrench, "", t0)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		table      string
		lang       model.Language
		entryPath  string
		wantErr    error
		wantScreen model.Screen
		wantTable  string
	}{
		{name: "Valid scan", table: "12", lang: model.LanguageArabic, wantScreen: model.ScreenMenu, wantTable: "12"},
		{name: "Table is trimmed", table: "  T4 ", lang: model.LanguageEnglish, wantScreen: model.ScreenMenu, wantTable: "T4"},
		{name: "Default language", table: "1", wantScreen: model.ScreenMenu, wantTable: "1"},
		{name: "Admin path", table: "1", lang: model.LanguageFrench, entryPath: "/admin", wantScreen: model.ScreenAdmin, wantTable: "1"},
		{name: "Admin hash", table: "1", lang: model.LanguageFrench, entryPath: "#admin", wantScreen: model.ScreenAdmin, wantTable: "1"},
		{name: "Empty table", table: "   ", lang: model.LanguageFrench, wantErr: model.ErrInvalidTable},
		{name: "Table too long", table: "12345678901", lang: model.LanguageFrench, wantErr: model.ErrInvalidTable},
		{name: "Unknown language", table: "1", lang: "de", wantErr: model.ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(uuid.New(), tt.table, tt.lang, tt.entryPath, t0)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantScreen, s.Screen)
			assert.Equal(t, tt.wantTable, s.TableNumber)
			assert.True(t, s.Cart.IsEmpty())
			assert.Nil(t, s.User)
		})
	}
}

func TestSession_Navigate(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.Navigate(model.ScreenCart))
	assert.Equal(t, model.ScreenCart, s.Screen)

	assert.Equal(t, model.ErrInvalidScreen, s.Navigate(model.ScreenScan))
	assert.Equal(t, model.ErrInvalidScreen, s.Navigate("kitchen"))
	assert.Equal(t, model.ScreenCart, s.Screen)
}

func TestSession_Login(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		method   model.LoginMethod
		points   int
		wantErr  error
		wantName string
	}{
		{name: "Email", user: "Amira", method: model.LoginEmail, points: 120, wantName: "Amira"},
		{name: "Phone needs a name", user: "", method: model.LoginPhone, wantErr: model.ErrInvalidLogin},
		{name: "Facebook default name", method: model.LoginFacebook, wantName: "Utilisateur Facebook"},
		{name: "Google default name", method: model.LoginGoogle, wantName: "Utilisateur Google"},
		{name: "Unknown method", user: "x", method: "sms", wantErr: model.ErrInvalidLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			err := s.Login(tt.user, tt.method, tt.points)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, s.User)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s.User)
			assert.Equal(t, tt.wantName, s.User.Name)
			assert.Equal(t, tt.points, s.User.Points)
			assert.Equal(t, tt.method, s.User.LoginMethod)
		})
	}
}

func TestSession_CartReducers(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, model.ErrInvalidQuantity, s.AddToCart(menuItem("A", "2"), 0, ""))

	off := menuItem("B", "2")
	off.Available = false
	assert.Equal(t, model.ErrItemUnavailable, s.AddToCart(off, 1, ""))

	require.NoError(t, s.AddToCart(menuItem("A", "2"), 2, " sans sel "))
	e, ok := s.Cart.Get("A")
	require.True(t, ok)
	assert.Equal(t, "sans sel", e.Note)

	assert.Equal(t, model.ErrNegativeQuantity, s.UpdateCart("A", -1))
	require.NoError(t, s.UpdateCart("missing", 3))
	require.NoError(t, s.UpdateCart("A", 5))
	e, _ = s.Cart.Get("A")
	assert.Equal(t, 5, e.Quantity)

	s.RemoveFromCart("A")
	assert.True(t, s.Cart.IsEmpty())

	require.NoError(t, s.AddToCart(menuItem("A", "2"), 1, ""))
	s.ClearCart()
	assert.True(t, s.Cart.IsEmpty())
}

func TestSession_ConfirmOrder_WithUser(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Login("Amira", model.LoginEmail, 10))
	require.NoError(t, s.Navigate(model.ScreenCart))
	require.NoError(t, s.AddToCart(menuItem("A", "12.50"), 2, ""))
	require.NoError(t, s.AddToCart(menuItem("B", "3.00"), 1, ""))

	c := s.ConfirmOrder()

	assert.True(t, decimal.RequireFromString("28.00").Equal(c.Total))
	assert.Equal(t, 28, c.PointsEarned)
	require.Len(t, c.Lines, 2)
	require.NotNil(t, c.User)
	assert.Equal(t, 38, c.User.Points)
	assert.Equal(t, 38, s.User.Points)
	assert.True(t, s.Cart.IsEmpty())
	assert.Equal(t, model.ScreenMenu, s.Screen)
}

func TestSession_ConfirmOrder_WithoutUser(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.AddToCart(menuItem("A", "9.99"), 1, ""))

	c := s.ConfirmOrder()

	assert.Equal(t, 9, c.PointsEarned)
	assert.Nil(t, c.User)
	assert.Nil(t, s.User)
	assert.True(t, s.Cart.IsEmpty())
}

func TestSession_ConfirmOrder_PointsAccumulate(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Login("Amira", model.LoginEmail, 0))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddToCart(menuItem("A", "7.60"), 1, ""))
		s.ConfirmOrder()
	}

	assert.Equal(t, 21, s.User.Points)
}

func TestSession_CloneIsIndependent(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Login("Amira", model.LoginEmail, 5))
	require.NoError(t, s.AddToCart(menuItem("A", "1"), 1, ""))
	s.Assistant.Allergies = []string{"gluten"}

	c := s.Clone()
	c.User.Points = 99
	c.Cart.Clear()
	c.Assistant.Allergies[0] = "lait"

	assert.Equal(t, 5, s.User.Points)
	assert.False(t, s.Cart.IsEmpty())
	assert.Equal(t, "gluten", s.Assistant.Allergies[0])
}

func TestSession_View(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.AddToCart(menuItem("A", "12.50"), 2, ""))

	v := s.View()
	assert.Equal(t, s.ID, v.ID)
	assert.Equal(t, "25.00", v.Cart.Display)
	assert.Equal(t, 2, v.Cart.ItemCount)
	assert.Nil(t, v.User)
}
