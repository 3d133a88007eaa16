// Package router wires the handlers onto a chi router.
package router

import (
	"encoding/json"
	"net/http"

	"tableside/internal/handler"
	"tableside/internal/middleware"
	"tableside/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Menu      *handler.MenuHandler
	Session   *handler.SessionHandler
	Order     *handler.OrderHandler
	Staff     *handler.StaffHandler
	Assistant *handler.AssistantHandler
	Admin     *handler.AdminHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, auth middleware.Authorizer, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> Logging -> CORS
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "NOT_FOUND", Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{
			Error:   model.ErrCodeMethodNotAllowed,
			Message: "Method not allowed",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api/menu", func(r chi.Router) {
		r.Get("/", h.Menu.Overview)
		r.Get("/categories", h.Menu.Categories)
		r.Get("/items", h.Menu.Items)
		r.Get("/items/{itemID}", h.Menu.Item)
	})

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.Session.Start)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.Session.Get)
			r.Put("/screen", h.Session.Navigate)
			r.Post("/login", h.Session.Login)
			r.Get("/loyalty", h.Session.Loyalty)

			r.Get("/cart", h.Session.Cart)
			r.Delete("/cart", h.Session.ClearCart)
			r.Post("/cart/items", h.Session.AddToCart)
			r.Put("/cart/items/{itemID}", h.Session.UpdateCartItem)
			r.Delete("/cart/items/{itemID}", h.Session.RemoveCartItem)

			r.Post("/orders", h.Order.Confirm)
			r.Post("/complaints", h.Staff.SubmitComplaint)
			r.Post("/bill", h.Staff.RequestBill)

			r.Get("/assistant", h.Assistant.Greeting)
			r.Post("/assistant/messages", h.Assistant.Message)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.Admin.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(auth, logger))

			r.Post("/logout", h.Admin.Logout)

			r.Get("/menu", h.Admin.Menu)
			r.Get("/menu/export", h.Admin.Export)
			r.Post("/menu/publish", h.Admin.Publish)
			r.Post("/menu/categories", h.Admin.AddCategory)
			r.Put("/menu/categories/{categoryID}", h.Admin.UpdateCategory)
			r.Delete("/menu/categories/{categoryID}", h.Admin.DeleteCategory)
			r.Post("/menu/categories/{categoryID}/items", h.Admin.AddItem)
			r.Put("/menu/categories/{categoryID}/items/{itemName}", h.Admin.UpdateItem)
			r.Delete("/menu/categories/{categoryID}/items/{itemName}", h.Admin.DeleteItem)

			r.Get("/orders", h.Order.List)
			r.Get("/orders/{orderID}", h.Order.GetByID)
			r.Get("/complaints", h.Staff.ListComplaints)
			r.Get("/bills", h.Staff.ListBills)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
