// Package users is the client for the admin user-management surface.
package users

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/internal/rest"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

// Service issues admin user calls against the API. Every endpoint requires
// an administrator session.
type Service struct {
	rest *rest.Client
	log  *slog.Logger
}

// New builds the users service over the shared REST client.
func New(restClient *rest.Client, logger *slog.Logger) *Service {
	return &Service{
		rest: restClient,
		log:  logutil.WithFields(logger, "component", "users"),
	}
}

type userEnvelope struct {
	Data models.User `json:"data"`
}

type usersEnvelope struct {
	Data []models.User `json:"data"`
}

// List fetches all user accounts.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var out usersEnvelope
	if err := s.rest.Get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Get fetches a single user account.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	var out userEnvelope
	if err := s.rest.Get(ctx, "/admin/users/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Create adds a user account.
func (s *Service) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	var out userEnvelope
	if err := s.rest.Post(ctx, "/admin/users", params, &out); err != nil {
		return nil, err
	}
	s.log.Info("created user", "user_id", out.Data.ID, "role", out.Data.Role)
	return &out.Data, nil
}

// Update applies a partial update to a user account.
func (s *Service) Update(ctx context.Context, id string, params models.UserUpdateParams) (*models.User, error) {
	var out userEnvelope
	if err := s.rest.Put(ctx, "/admin/users/"+url.PathEscape(id), params, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Delete removes a user account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.rest.Delete(ctx, "/admin/users/"+url.PathEscape(id))
}

// SetRole changes a user's role.
func (s *Service) SetRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var out userEnvelope
	path := "/admin/users/" + url.PathEscape(id) + "/role"
	if err := s.rest.Patch(ctx, path, map[string]models.Role{"role": role}, &out); err != nil {
		return nil, err
	}
	s.log.Info("changed user role", "user_id", id, "role", role)
	return &out.Data, nil
}
