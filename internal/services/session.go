package services

import (
	"context"
	"log"

	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/store"
	"mtdstore-client/internal/utils"
)

// SessionService handles login, logout, and session re-validation. The
// authoritative session lives server-side; the store only mirrors it.
type SessionService struct {
	client   *api.Client
	store    *store.Store
	workflow *OrderWorkflow
}

// NewSessionService creates the session service.
func NewSessionService(client *api.Client, st *store.Store, workflow *OrderWorkflow) *SessionService {
	return &SessionService{client: client, store: st, workflow: workflow}
}

// Login authenticates and primes the view-model cache for the
// confirmed role. The server-returned role wins over the one the user
// picked on the login screen.
func (s *SessionService) Login(ctx context.Context, username, password string) (store.Identity, error) {
	if err := utils.RequireNonEmpty("username", username); err != nil {
		return store.Identity{}, err
	}
	if err := utils.RequireNonEmpty("password", password); err != nil {
		return store.Identity{}, err
	}

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		return store.Identity{}, err
	}
	if resp.Token != "" {
		s.client.SetToken(resp.Token)
	}

	identity := store.Identity{Username: resp.Username, Role: resp.Role}
	s.store.SetIdentity(identity)

	if err := s.store.RefreshAll(ctx); err != nil {
		// The session is established; dashboards will retry on their
		// next activation.
		log.Printf("initial cache refresh failed: %v", err)
	}
	return identity, nil
}

// Restore re-validates an existing server-side session, e.g. on
// startup with a configured bearer token.
func (s *SessionService) Restore(ctx context.Context) (store.Identity, error) {
	resp, err := s.client.CurrentUser(ctx)
	if err != nil {
		return store.Identity{}, err
	}
	identity := store.Identity{Username: resp.Username, Role: resp.Role}
	s.store.SetIdentity(identity)
	if err := s.store.RefreshAll(ctx); err != nil {
		log.Printf("initial cache refresh failed: %v", err)
	}
	return identity, nil
}

// Logout tears down the session. The server call is best effort;
// local state is cleared regardless: identity, cache mirrors, the
// order draft, and any running countdown.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		log.Printf("logout request failed: %v", err)
	}
	s.workflow.Reset()
	s.store.ClearSession()
	s.client.SetToken("")
}

// CurrentRole returns the mirrored role, if logged in.
func (s *SessionService) CurrentRole() (models.Role, bool) {
	identity, ok := s.store.Identity()
	if !ok {
		return "", false
	}
	return identity.Role, true
}
