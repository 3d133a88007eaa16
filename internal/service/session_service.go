package service

import (
	"context"
	"math/rand/v2"

	"tableside/internal/loyalty"
	"tableside/internal/model"
	"tableside/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// optionSeparator joins an item id and a price variant name in cart ids.
const optionSeparator = ":"

// PointsSource supplies the opening balance of a customer who logs in.
type PointsSource func() int

// RandomPoints returns a balance between 0 and 299, standing in for a
// loyalty account lookup.
func RandomPoints() int {
	return rand.IntN(300)
}

type sessionService struct {
	store  *session.Store
	menu   Menu
	points PointsSource
	logger zerolog.Logger
}

// NewSessionService creates a new session service. A nil points source
// defaults to RandomPoints.
func NewSessionService(store *session.Store, menu Menu, points PointsSource, logger zerolog.Logger) SessionService {
	if points == nil {
		points = RandomPoints
	}
	return &sessionService{
		store:  store,
		menu:   menu,
		points: points,
		logger: logger.With().Str("service", "session").Logger(),
	}
}

func (s *sessionService) Start(_ context.Context, req *model.StartSessionRequest) (model.SessionView, error) {
	sess, err := session.New(uuid.New(), req.TableNumber, req.Language, req.EntryPath, s.store.Now())
	if err != nil {
		s.logger.Debug().Err(err).Str("table", req.TableNumber).Msg("rejected scan")
		return model.SessionView{}, err
	}

	created := s.store.Create(sess)

	s.logger.Info().
		Str("session_id", created.ID.String()).
		Str("table", created.TableNumber).
		Str("language", string(created.Language)).
		Str("screen", string(created.Screen)).
		Msg("table session started")

	return created.View(), nil
}

func (s *sessionService) Get(_ context.Context, id uuid.UUID) (model.SessionView, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return model.SessionView{}, err
	}
	return sess.View(), nil
}

func (s *sessionService) Navigate(_ context.Context, id uuid.UUID, screen model.Screen) (model.SessionView, error) {
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		return sess.Navigate(screen)
	})
	if err != nil {
		return model.SessionView{}, err
	}
	return sess.View(), nil
}

func (s *sessionService) Login(_ context.Context, id uuid.UUID, req *model.LoginRequest) (model.SessionView, error) {
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		return sess.Login(req.Name, req.Method, s.points())
	})
	if err != nil {
		return model.SessionView{}, err
	}

	s.logger.Info().
		Str("session_id", id.String()).
		Str("method", string(req.Method)).
		Int("points", sess.User.Points).
		Msg("customer logged in")

	return sess.View(), nil
}

func (s *sessionService) Loyalty(_ context.Context, id uuid.UUID) (loyalty.Card, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return loyalty.Card{}, err
	}
	if sess.User == nil {
		return loyalty.Card{}, model.ErrNotLoggedIn
	}
	return loyalty.CardFor(sess.User.Points), nil
}

func (s *sessionService) Cart(_ context.Context, id uuid.UUID) (model.CartView, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return model.CartView{}, err
	}
	return sess.Cart.View(), nil
}

// AddToCart resolves the item and optional price variant before handing it to
// the session. A variant becomes its own cart line.
func (s *sessionService) AddToCart(_ context.Context, id uuid.UUID, req *model.AddToCartRequest) (model.CartView, error) {
	if req.ItemID == "" {
		return model.CartView{}, model.ErrMissingField
	}

	item, ok := s.menu.ByID(req.ItemID)
	if !ok {
		return model.CartView{}, model.ErrItemNotFound
	}

	if req.Option != "" {
		opt, ok := item.Option(req.Option)
		if !ok {
			return model.CartView{}, model.ErrOptionNotFound
		}
		item = variant(item, opt)
	}

	sess, err := s.store.Update(id, func(sess *session.Session) error {
		return sess.AddToCart(item, req.Quantity, req.Note)
	})
	if err != nil {
		return model.CartView{}, err
	}

	s.logger.Debug().
		Str("session_id", id.String()).
		Str("item_id", item.ID).
		Int("quantity", req.Quantity).
		Msg("item added to cart")

	return sess.Cart.View(), nil
}

func (s *sessionService) UpdateCart(_ context.Context, id uuid.UUID, itemID string, quantity int) (model.CartView, error) {
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		return sess.UpdateCart(itemID, quantity)
	})
	if err != nil {
		return model.CartView{}, err
	}
	return sess.Cart.View(), nil
}

func (s *sessionService) RemoveFromCart(_ context.Context, id uuid.UUID, itemID string) (model.CartView, error) {
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		sess.RemoveFromCart(itemID)
		return nil
	})
	if err != nil {
		return model.CartView{}, err
	}
	return sess.Cart.View(), nil
}

func (s *sessionService) ClearCart(_ context.Context, id uuid.UUID) (model.CartView, error) {
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		sess.ClearCart()
		return nil
	})
	if err != nil {
		return model.CartView{}, err
	}
	return sess.Cart.View(), nil
}

func variant(item model.MenuItem, opt model.PriceOption) model.MenuItem {
	item.ID = item.ID + optionSeparator + opt.Name
	item.Name = item.Name + " (" + opt.Name + ")"
	item.Price = opt.Price
	item.Options = nil
	return item
}
