package services

import (
	"context"

	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/utils"
)

// AdminService handles platform user management.
type AdminService struct {
	client *api.Client
}

// NewAdminService creates the admin service.
func NewAdminService(client *api.Client) *AdminService {
	return &AdminService{client: client}
}

// Users lists all accounts.
func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	return s.client.AdminUsers(ctx)
}

// AddUser validates and creates an account. Duplicate usernames come
// back as a ServerRejection with the server's message.
func (s *AdminService) AddUser(ctx context.Context, username, password string, role models.Role) error {
	if err := utils.RequireNonEmpty("username", username); err != nil {
		return err
	}
	if err := utils.RequireNonEmpty("password", password); err != nil {
		return err
	}
	if !role.Valid() {
		return utils.NewValidationError("role", "must be buyer, seller, or admin")
	}
	return s.client.AddUser(ctx, api.UserRequest{Username: username, Password: password, Role: role})
}

// RemoveUser deletes an account by username.
func (s *AdminService) RemoveUser(ctx context.Context, username string) error {
	if err := utils.RequireNonEmpty("username", username); err != nil {
		return err
	}
	return s.client.DeleteUser(ctx, username)
}
