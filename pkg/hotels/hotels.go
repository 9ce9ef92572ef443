// Package hotels is the client for the hotel and room resources. Reads are
// public endpoints; writes go through the admin surface and require an
// administrator session, which the request pipeline attaches automatically.
package hotels

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/internal/rest"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

// Service issues hotel and room calls against the API.
type Service struct {
	rest *rest.Client
	log  *slog.Logger
}

// New builds the hotels service over the shared REST client.
func New(restClient *rest.Client, logger *slog.Logger) *Service {
	return &Service{
		rest: restClient,
		log:  logutil.WithFields(logger, "component", "hotels"),
	}
}

type hotelEnvelope struct {
	Data models.Hotel `json:"data"`
}

type hotelsEnvelope struct {
	Data []models.Hotel `json:"data"`
}

type roomEnvelope struct {
	Data models.Room `json:"data"`
}

type roomsEnvelope struct {
	Data []models.Room `json:"data"`
}

// List fetches all hotel listings.
func (s *Service) List(ctx context.Context) ([]models.Hotel, error) {
	var out hotelsEnvelope
	if err := s.rest.Get(ctx, "/hotels", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Get fetches a single hotel by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Hotel, error) {
	var out hotelEnvelope
	if err := s.rest.Get(ctx, "/hotels/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Create adds a new hotel (admin only).
func (s *Service) Create(ctx context.Context, params models.CreateHotelParams) (*models.Hotel, error) {
	var out hotelEnvelope
	if err := s.rest.Post(ctx, "/admin/hotels", params, &out); err != nil {
		return nil, err
	}
	s.log.Info("created hotel", "hotel_id", out.Data.ID)
	return &out.Data, nil
}

// Update replaces a hotel's editable fields (admin only).
func (s *Service) Update(ctx context.Context, id string, params models.CreateHotelParams) (*models.Hotel, error) {
	var out hotelEnvelope
	if err := s.rest.Put(ctx, "/admin/hotels/"+url.PathEscape(id), params, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Delete removes a hotel (admin only).
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.rest.Delete(ctx, "/admin/hotels/"+url.PathEscape(id))
}

// ListRooms fetches all room types of a hotel.
func (s *Service) ListRooms(ctx context.Context, hotelID string) ([]models.Room, error) {
	var out roomsEnvelope
	if err := s.rest.Get(ctx, "/hotels/"+url.PathEscape(hotelID)+"/rooms", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetRoom fetches one room type of a hotel.
func (s *Service) GetRoom(ctx context.Context, hotelID, roomID string) (*models.Room, error) {
	var out roomEnvelope
	path := "/hotels/" + url.PathEscape(hotelID) + "/rooms/" + url.PathEscape(roomID)
	if err := s.rest.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateRoom adds a room type under a hotel (admin only).
func (s *Service) CreateRoom(ctx context.Context, hotelID string, params models.CreateRoomParams) (*models.Room, error) {
	var out roomEnvelope
	path := "/admin/hotels/" + url.PathEscape(hotelID) + "/rooms"
	if err := s.rest.Post(ctx, path, params, &out); err != nil {
		return nil, err
	}
	s.log.Info("created room", "hotel_id", hotelID, "room_id", out.Data.ID)
	return &out.Data, nil
}

// UpdateRoom replaces a room's editable fields (admin only).
func (s *Service) UpdateRoom(ctx context.Context, hotelID, roomID string, params models.CreateRoomParams) (*models.Room, error) {
	var out roomEnvelope
	path := "/admin/hotels/" + url.PathEscape(hotelID) + "/rooms/" + url.PathEscape(roomID)
	if err := s.rest.Put(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteRoom removes a room type (admin only).
func (s *Service) DeleteRoom(ctx context.Context, hotelID, roomID string) error {
	path := "/admin/hotels/" + url.PathEscape(hotelID) + "/rooms/" + url.PathEscape(roomID)
	return s.rest.Delete(ctx, path)
}
