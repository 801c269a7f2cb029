package auth

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jkariuki/dealdrop/internal/logging"
	"github.com/jkariuki/dealdrop/internal/store"
)

// tokenExpiry is the session token lifetime.
const tokenExpiry = 7 * 24 * time.Hour

// claims are the JWT claims carried by a session token.
type claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LocalProvider implements Provider against the local SQLite store:
// bcrypt password hashes, HS256 session tokens, and per-account sign-in
// rate limiting. The auth view calls SignIn and SignUp from command
// goroutines off the UI turn, so the session state is guarded by a mutex.
type LocalProvider struct {
	store  *store.Store
	secret []byte

	mu        sync.Mutex
	session   *Session
	listeners map[int]func(*Session)
	nextID    int

	limiters     map[string]*rate.Limiter
	signInPerMin int
}

// NewLocalProvider creates a provider signing tokens with secret.
// signInPerMinute caps sign-in attempts per account.
func NewLocalProvider(st *store.Store, secret string, signInPerMinute int) *LocalProvider {
	if signInPerMinute <= 0 {
		signInPerMinute = 5
	}
	return &LocalProvider{
		store:        st,
		secret:       []byte(secret),
		listeners:    make(map[int]func(*Session)),
		limiters:     make(map[string]*rate.Limiter),
		signInPerMin: signInPerMinute,
	}
}

// SignIn verifies credentials and opens a session.
func (p *LocalProvider) SignIn(email, password string) (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.limiter(email).Allow() {
		return Session{}, ErrTooManyAttempts
	}

	u, err := p.store.GetUserByEmail(email)
	if err == store.ErrUserNotFound {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("look up account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	sess, err := p.openSession(u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}
	logging.Info("signed in", "user", u.ID)
	return sess, nil
}

// SignUp creates an account and opens a session for it.
func (p *LocalProvider) SignUp(email, password string, metadata map[string]string) (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	var meta string
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return Session{}, fmt.Errorf("marshal metadata: %w", err)
		}
		meta = string(b)
	}

	u := store.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     meta,
	}
	if err := p.store.CreateUser(u); err != nil {
		return Session{}, err
	}

	sess, err := p.openSession(u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}
	logging.Info("account created", "user", u.ID)
	return sess, nil
}

// SignOut closes the current session. Signing out while signed out is fine.
func (p *LocalProvider) SignOut() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil
	}
	logging.Info("signed out", "user", p.session.UserID)
	p.session = nil
	p.broadcast(nil)
	return nil
}

// ResetPassword acknowledges the request without revealing whether the
// account exists. The local provider has no mail backend; the reset path
// is a stub that logs the request.
func (p *LocalProvider) ResetPassword(email string) error {
	logging.Info("password reset requested", "email", email)
	return nil
}

// SignInWithOAuth is unavailable on the local provider.
func (p *LocalProvider) SignInWithOAuth(provider string) (Session, error) {
	return Session{}, ErrOAuthUnavailable
}

// Session returns the current session, if any.
func (p *LocalProvider) Session() (Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return Session{}, false
	}
	return *p.session, true
}

// OnSessionChange registers a session listener and returns its
// unsubscribe function.
func (p *LocalProvider) OnSessionChange(fn func(*Session)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// Restore validates a previously issued token and reopens its session.
// Used at startup to continue a persisted session.
func (p *LocalProvider) Restore(token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return fmt.Errorf("invalid token")
	}

	sess := Session{
		Token:     token,
		UserID:    c.UserID,
		Email:     c.Email,
		IssuedAt:  c.IssuedAt.Time,
		ExpiresAt: c.ExpiresAt.Time,
	}
	p.session = &sess
	p.broadcast(&sess)
	return nil
}

// openSession, broadcast and limiter are called with mu held.
func (p *LocalProvider) openSession(userID, email string) (Session, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return Session{}, fmt.Errorf("signing token: %w", err)
	}

	sess := Session{
		Token:     signed,
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenExpiry),
	}
	p.session = &sess
	p.broadcast(&sess)
	return sess, nil
}

func (p *LocalProvider) broadcast(s *Session) {
	for _, fn := range p.listeners {
		fn(s)
	}
}

func (p *LocalProvider) limiter(email string) *rate.Limiter {
	l, ok := p.limiters[email]
	if !ok {
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(p.signInPerMin)), p.signInPerMin)
		p.limiters[email] = l
	}
	return l
}
