// Package bookings is the client for the booking resource. Every call needs
// an authenticated session; the request pipeline attaches the token and
// handles expiry.
package bookings

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/internal/rest"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

// Service issues booking calls against the API.
type Service struct {
	rest *rest.Client
	log  *slog.Logger
}

// New builds the bookings service over the shared REST client.
func New(restClient *rest.Client, logger *slog.Logger) *Service {
	return &Service{
		rest: restClient,
		log:  logutil.WithFields(logger, "component", "bookings"),
	}
}

type bookingEnvelope struct {
	Data models.Booking `json:"data"`
}

type bookingsEnvelope struct {
	Data []models.Booking `json:"data"`
}

// Get fetches a single booking by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Booking, error) {
	var out bookingEnvelope
	if err := s.rest.Get(ctx, "/bookings/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListByHotel fetches all bookings of a hotel.
func (s *Service) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	var out bookingsEnvelope
	if err := s.rest.Get(ctx, "/hotels/"+url.PathEscape(hotelID)+"/bookings", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Create places a new booking for the current user.
func (s *Service) Create(ctx context.Context, params models.CreateBookingParams) (*models.Booking, error) {
	var out bookingEnvelope
	if err := s.rest.Post(ctx, "/bookings", params, &out); err != nil {
		return nil, err
	}
	s.log.Info("placed booking", "booking_id", out.Data.ID, "room_id", params.RoomID)
	return &out.Data, nil
}

// Update changes an existing booking's dates or room.
func (s *Service) Update(ctx context.Context, id string, params models.CreateBookingParams) (*models.Booking, error) {
	var out bookingEnvelope
	if err := s.rest.Put(ctx, "/bookings/"+url.PathEscape(id), params, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Cancel removes a booking.
func (s *Service) Cancel(ctx context.Context, id string) error {
	if err := s.rest.Delete(ctx, "/bookings/"+url.PathEscape(id)); err != nil {
		return err
	}
	s.log.Info("cancelled booking", "booking_id", id)
	return nil
}
