// package auth manages local accounts and the signed-in session.
//
// The session is an observable state machine: it starts in [StateLoading]
// until a persisted session is restored (or ruled out), then settles into
// [StateAuthenticated] or [StateUnauthenticated]. Views subscribe to state
// changes rather than polling, so gating decisions (which screen to show,
// whether rating is allowed) always follow the resolved state.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/repositories"
	"github.com/desertthunder/tunescout/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// State is the session's position in its lifecycle.
type State int

const (
	// StateLoading means the persisted session has not resolved yet.
	// Views must not render authenticated or unauthenticated UI during it.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

const minPasswordLength = 6

// Listener receives session state transitions.
type Listener func(State, *models.User)

// Session tracks the signed-in user and notifies subscribers on changes.
type Session struct {
	users  *repositories.UserRepository
	logger *log.Logger

	mu        sync.Mutex
	state     State
	user      *models.User
	listeners map[int]Listener
	nextID    int
}

// NewSession creates a session in [StateLoading]. Call [Session.Restore] to
// resolve it.
func NewSession(users *repositories.UserRepository, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{
		users:     users,
		logger:    logger,
		state:     StateLoading,
		listeners: map[int]Listener{},
	}
}

// Restore resolves a persisted session by user ID. An empty or stale ID
// resolves to [StateUnauthenticated]; restore never fails the caller.
func (s *Session) Restore(userID string) {
	if userID == "" {
		s.transition(StateUnauthenticated, nil)
		return
	}

	user, err := s.users.Get(userID)
	if err != nil {
		if !errors.Is(err, shared.ErrUserNotFound) {
			s.logger.Warn("session restore failed", "error", err)
		}
		s.transition(StateUnauthenticated, nil)
		return
	}

	s.transition(StateAuthenticated, user)
}

// SignUp creates an account and signs it in.
//
// Email uniqueness is checked by lookup before insert; there is no unique
// index backing it. Passwords are hashed with bcrypt at the default cost.
func (s *Session) SignUp(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", shared.ErrInvalidInput, email)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrInvalidInput, minPasswordLength)
	}

	_, err := s.users.GetByEmail(email)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserExists, email)
	}
	if !errors.Is(err, shared.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(0, email, string(hash))
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created", "email", email)
	s.transition(StateAuthenticated, user)
	return user, nil
}

// SignIn verifies credentials and signs the user in. Wrong email and wrong
// password return the same [shared.ErrAuthFailed].
func (s *Session) SignIn(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: invalid email or password", shared.ErrAuthFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", shared.ErrAuthFailed)
	}

	s.logger.Info("signed in", "email", email)
	s.transition(StateAuthenticated, user)
	return user, nil
}

// SignOut clears the current user.
func (s *Session) SignOut() {
	s.transition(StateUnauthenticated, nil)
}

// Current returns the session state and user; user is nil unless
// authenticated.
func (s *Session) Current() (State, *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.user
}

// UserID returns the signed-in user's ID, or "" when not authenticated.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID()
}

// Subscribe registers a listener for state transitions and returns its
// unsubscribe function. The listener fires immediately with the current state
// so subscribers never miss a transition that happened before they attached.
func (s *Session) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	state, user := s.state, s.user
	s.mu.Unlock()

	fn(state, user)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) transition(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	notify := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(state, user)
	}
}
