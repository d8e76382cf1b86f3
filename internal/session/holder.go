// Package session holds the current authenticated user, if any.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"storefront/internal/api"
	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/statestore"
)

// State is the holder's position in the startup reconciliation machine:
// Unknown until the stored credentials are inspected, Optimistic while a
// cached profile is shown ahead of revalidation, then either Verified or
// Unauthenticated.
type State string

const (
	StateUnknown         State = "unknown"
	StateOptimistic      State = "optimistic"
	StateVerified        State = "verified"
	StateUnauthenticated State = "unauthenticated"
)

type authAPI interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Register(ctx context.Context, in api.RegisterInput) (*api.TokenResponse, error)
	Me(ctx context.Context) (*domain.Profile, error)
}

// Holder owns the session state and the persisted credentials. It implements
// api.TokenSource, so construction is two-step: build the Holder, build the
// api.Client with the Holder as its token source, then Bind the client.
type Holder struct {
	mu      sync.Mutex
	state   State
	token   string
	profile *domain.Profile

	client authAPI
	repo   statestore.Repository
	bus    *notify.Bus
	logger *log.Logger
}

func NewHolder(repo statestore.Repository, bus *notify.Bus, logger *log.Logger) *Holder {
	return &Holder{state: StateUnknown, repo: repo, bus: bus, logger: logger}
}

// Bind attaches the upstream client. Must be called before Login, Register or
// Reconcile.
func (h *Holder) Bind(client authAPI) {
	h.client = client
}

// Token implements api.TokenSource.
func (h *Holder) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}

func (h *Holder) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Loading reports whether the stored credentials have not been inspected yet.
// Once a cached profile is shown optimistically, loading is over.
func (h *Holder) Loading() bool {
	return h.State() == StateUnknown
}

// Profile returns the current profile, or nil when unauthenticated.
func (h *Holder) Profile() *domain.Profile {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.profile == nil {
		return nil
	}
	p := *h.profile
	return &p
}

func (h *Holder) IsAdmin() bool {
	p := h.Profile()
	return p != nil && p.IsAdmin()
}

// Restore inspects the persisted credentials. With a token and a cached
// profile present it moves to Optimistic so returning users see their profile
// without a loading flash; otherwise it settles on Unauthenticated.
func (h *Holder) Restore(ctx context.Context) {
	token := h.loadToken(ctx)
	profile := h.loadProfile(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if token == "" || profile == nil {
		h.state = StateUnauthenticated
		return
	}
	h.token = token
	h.profile = profile
	h.state = StateOptimistic
}

// Reconcile enforces server-side truth after an optimistic restore: the token
// is revalidated against the upstream, the cached profile refreshed on
// success, and all stored credentials evicted on failure.
func (h *Holder) Reconcile(ctx context.Context) {
	if h.State() != StateOptimistic {
		return
	}
	profile, err := h.client.Me(ctx)
	if err != nil {
		h.logger.Printf("session revalidation failed, logging out: %v", err)
		h.evict(ctx)
		return
	}
	h.mu.Lock()
	h.profile = profile
	h.state = StateVerified
	h.mu.Unlock()
	h.persistProfile(ctx, *profile)
}

// Login delegates to the upstream and stores the issued credentials. The
// failure is surfaced to the user and propagated so the caller decides
// navigation.
func (h *Holder) Login(ctx context.Context, email, password string) (*domain.Profile, error) {
	res, err := h.client.Login(ctx, email, password)
	if err != nil {
		h.bus.Error(loginErrMessage(err))
		return nil, err
	}
	h.store(ctx, res)
	h.bus.Success("Welcome back!")
	return h.Profile(), nil
}

// Register creates an account upstream; a successful registration signs the
// user in immediately.
func (h *Holder) Register(ctx context.Context, email, password, fullName, phone string) (*domain.Profile, error) {
	res, err := h.client.Register(ctx, api.RegisterInput{
		Email:    email,
		Password: password,
		FullName: fullName,
		Phone:    phone,
	})
	if err != nil {
		h.bus.Error(registerErrMessage(err))
		return nil, err
	}
	h.store(ctx, res)
	h.bus.Success("Account created successfully!")
	return h.Profile(), nil
}

// Logout clears stored credentials and the current profile unconditionally;
// no upstream call is involved.
func (h *Holder) Logout(ctx context.Context) {
	h.evict(ctx)
	h.bus.Success("Logged out successfully")
}

func (h *Holder) store(ctx context.Context, res *api.TokenResponse) {
	profile := res.User
	h.mu.Lock()
	h.token = res.AccessToken
	h.profile = &profile
	h.state = StateVerified
	h.mu.Unlock()

	if data, err := json.Marshal(res.AccessToken); err == nil {
		if err := h.repo.Save(ctx, statestore.KeyToken, data); err != nil {
			h.logger.Printf("persist token: %v", err)
		}
	}
	h.persistProfile(ctx, profile)
}

func (h *Holder) persistProfile(ctx context.Context, profile domain.Profile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := h.repo.Save(ctx, statestore.KeyUser, data); err != nil {
		h.logger.Printf("persist profile: %v", err)
	}
}

func (h *Holder) evict(ctx context.Context) {
	h.mu.Lock()
	h.token = ""
	h.profile = nil
	h.state = StateUnauthenticated
	h.mu.Unlock()

	if err := h.repo.Delete(ctx, statestore.KeyToken); err != nil {
		h.logger.Printf("evict token: %v", err)
	}
	if err := h.repo.Delete(ctx, statestore.KeyUser); err != nil {
		h.logger.Printf("evict profile: %v", err)
	}
}

func (h *Holder) loadToken(ctx context.Context) string {
	data, err := h.repo.Load(ctx, statestore.KeyToken)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("load token: %v", err)
		}
		return ""
	}
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return ""
	}
	return token
}

func (h *Holder) loadProfile(ctx context.Context) *domain.Profile {
	data, err := h.repo.Load(ctx, statestore.KeyUser)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("load profile: %v", err)
		}
		return nil
	}
	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}
	return &profile
}

func loginErrMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Login failed"
}

func registerErrMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Registration failed"
}
