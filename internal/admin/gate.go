package admin

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"tableside/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// CooldownCap bounds the lockout after repeated failures.
const CooldownCap = 30 * time.Second

// throttleRetention is how long a client's failure count is kept once its
// cooldown has ended.
const throttleRetention = 15 * time.Minute

// CooldownFor returns min(30s, 2^failures seconds).
func CooldownFor(failures int) time.Duration {
	if failures >= 5 {
		return CooldownCap
	}
	d := time.Duration(1<<failures) * time.Second
	if d > CooldownCap {
		return CooldownCap
	}
	return d
}

// LockoutError reports that a client must wait before trying again.
type LockoutError struct {
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("too many failed attempts, retry in %s", e.RetryAfter)
}

// Unwrap lets callers match the lockout as model.ErrTooManyAttempts.
func (e *LockoutError) Unwrap() error {
	return model.ErrTooManyAttempts
}

// Token is an admin session credential.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type throttle struct {
	failures    int
	lockedUntil time.Time
}

// Gate checks the admin password and tracks issued tokens.
type Gate struct {
	mu       sync.Mutex
	hash     []byte
	ttl      time.Duration
	now      func() time.Time
	tokens   map[string]time.Time
	throttle map[string]*throttle
	logger   zerolog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateClock overrides the gate's time source.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// NewGate creates a gate from a bcrypt hash, or from a plain password that is
// hashed once at startup when no hash is configured.
func NewGate(password, passwordHash string, ttl time.Duration, logger zerolog.Logger, opts ...GateOption) (*Gate, error) {
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, fmt.Errorf("admin password is required")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		hash = h
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	g := &Gate{
		hash:     hash,
		ttl:      ttl,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
		throttle: make(map[string]*throttle),
		logger:   logger.With().Str("component", "admin-gate").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Login checks password for client (typically the remote address) and
// issues a token. Each failure extends the client's cooldown.
func (g *Gate) Login(client, password string) (Token, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.pruneThrottle(now)

	th := g.throttle[client]
	if th != nil && now.Before(th.lockedUntil) {
		return Token{}, &LockoutError{RetryAfter: th.lockedUntil.Sub(now)}
	}

	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		if th == nil {
			th = &throttle{}
			g.throttle[client] = th
		}
		th.failures++
		th.lockedUntil = now.Add(CooldownFor(th.failures))

		g.logger.Warn().
			Str("client", client).
			Int("failures", th.failures).
			Msg("admin login failed")

		return Token{}, model.ErrInvalidPassword
	}

	delete(g.throttle, client)

	value, err := newToken()
	if err != nil {
		return Token{}, err
	}
	tok := Token{Value: value, ExpiresAt: now.Add(g.ttl)}
	g.tokens[value] = tok.ExpiresAt

	g.logger.Info().Str("client", client).Msg("admin logged in")
	return tok, nil
}

// Authorize reports whether token is a live admin token.
func (g *Gate) Authorize(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	exp, ok := g.tokens[token]
	if !ok {
		return model.ErrUnauthorised
	}
	if !g.now().Before(exp) {
		delete(g.tokens, token)
		return model.ErrUnauthorised
	}
	return nil
}

// Logout revokes a token.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.tokens, token)
	g.mu.Unlock()
}

// pruneThrottle forgets clients whose cooldown ended long ago. Callers hold g.mu.
func (g *Gate) pruneThrottle(now time.Time) {
	for client, th := range g.throttle {
		if now.Sub(th.lockedUntil) > throttleRetention {
			delete(g.throttle, client)
		}
	}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
