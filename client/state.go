package client

import (
	"context"
	"log"
	"sync"
)

// TokenStore is the durable local storage for the access token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	DestroyToken(ctx context.Context) error
}

// AuthState caches the authenticated user and exposes it through two
// subscription channels:
//
//   - the current-user channel suppresses duplicate consecutive values;
//   - the authentication-flag channel replays its last value to late
//     subscribers.
//
// The two channels update independently: after SetAuth an observer may
// see authenticated=true before the user value arrives.
type AuthState struct {
	api   *Client
	store TokenStore

	mu       sync.Mutex
	current  User
	lastAuth *bool
	userSubs []chan User
	authSubs []chan bool
}

func NewAuthState(api *Client, store TokenStore) *AuthState {
	return &AuthState{
		api:   api,
		store: store,
	}
}

// SubscribeUser returns a channel of current-user values. A value equal
// to the previously published one is not delivered. Slow subscribers
// that fall more than a buffer behind lose the oldest updates.
func (s *AuthState) SubscribeUser() <-chan User {
	ch := make(chan User, 16)
	s.mu.Lock()
	s.userSubs = append(s.userSubs, ch)
	s.mu.Unlock()
	return ch
}

// SubscribeAuth returns a channel of authentication-flag values. The
// most recently published value, if any, is delivered immediately.
func (s *AuthState) SubscribeAuth() <-chan bool {
	ch := make(chan bool, 16)
	s.mu.Lock()
	if s.lastAuth != nil {
		ch <- *s.lastAuth
	}
	s.authSubs = append(s.authSubs, ch)
	s.mu.Unlock()
	return ch
}

// CurrentUser returns the cached user value. The zero User is the
// unauthenticated sentinel.
func (s *AuthState) CurrentUser() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Populate checks local storage for an access token and, when one
// exists, loads the user's info from the server. Runs in the
// background: authentication state is not resolved when it returns.
func (s *AuthState) Populate(ctx context.Context) {
	go func() {
		tok, err := s.store.Token(ctx)
		if err != nil || tok == "" {
			// Remove any remnants of previous auth states.
			s.PurgeAuth()
			return
		}

		user, err := s.api.CurrentUser(ctx, tok)
		if err != nil {
			s.PurgeAuth()
			return
		}

		user.Token = tok
		s.SetAuth(user)
	}()
}

// SetAuth persists the access token and publishes the user value
// followed by authenticated=true.
func (s *AuthState) SetAuth(user User) {
	if err := s.store.SaveToken(context.Background(), user.Token); err != nil {
		log.Printf("auth state: saving token: %v", err)
	}

	s.mu.Lock()
	s.publishUser(user)
	s.publishAuth(true)
	s.mu.Unlock()
}

// PurgeAuth clears local storage and publishes the empty sentinel and
// authenticated=false.
func (s *AuthState) PurgeAuth() {
	if err := s.store.DestroyToken(context.Background()); err != nil {
		log.Printf("auth state: destroying token: %v", err)
	}

	s.mu.Lock()
	s.publishUser(User{})
	s.publishAuth(false)
	s.mu.Unlock()
}

// AttemptAuth dispatches to login or register. Only login updates the
// auth state: registration returns the server response without
// authenticating.
func (s *AuthState) AttemptAuth(ctx context.Context, kind string, creds Credentials) (User, error) {
	var (
		user User
		err  error
	)
	if kind == "login" {
		user, err = s.api.Login(ctx, creds)
	} else {
		user, err = s.api.Register(ctx, creds)
	}
	if err != nil {
		return User{}, err
	}

	if kind == "login" {
		s.SetAuth(user)
	}
	return user, nil
}

// Update pushes profile changes to the server and republishes the
// current-user value with the result.
func (s *AuthState) Update(ctx context.Context, req UpdateUserRequest) (User, error) {
	s.mu.Lock()
	tok := s.current.Token
	s.mu.Unlock()

	user, err := s.api.UpdateUser(ctx, tok, req)
	if err != nil {
		return User{}, err
	}

	user.Token = tok
	s.mu.Lock()
	s.publishUser(user)
	s.mu.Unlock()
	return user, nil
}

// Logout invalidates the session on the server and purges local state.
// The purge happens even when the server call fails.
func (s *AuthState) Logout(ctx context.Context) error {
	s.mu.Lock()
	tok := s.current.Token
	s.mu.Unlock()

	err := s.api.Logout(ctx, tok)
	s.PurgeAuth()
	return err
}

// publishUser delivers a new user value, skipping duplicates. Caller
// holds the mutex.
func (s *AuthState) publishUser(user User) {
	if user == s.current {
		return
	}
	s.current = user
	for _, ch := range s.userSubs {
		select {
		case ch <- user:
		default:
		}
	}
}

// publishAuth delivers the flag and records it for late subscribers.
// Caller holds the mutex.
func (s *AuthState) publishAuth(authenticated bool) {
	v := authenticated
	s.lastAuth = &v
	for _, ch := range s.authSubs {
		select {
		case ch <- authenticated:
		default:
		}
	}
}
