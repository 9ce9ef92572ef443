package models

import (
	"fmt"
	"time"
)

// User is the profile snapshot returned by the hotel API alongside a token.
// The client duplicates it locally rather than re-fetching it on every read.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role.AtLeast(RoleAdmin)
}

// Hotel represents a hotel listing.
type Hotel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CreateHotelParams is the payload for creating a hotel (admin only).
type CreateHotelParams struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

// Room represents a bookable room type within a hotel.
type Room struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	MaxPeople   int          `json:"maxPeople"`
	Description string       `json:"desc"`
	RoomNumbers []RoomNumber `json:"roomNumbers"`
	Images      []string     `json:"images"`
	Features    []string     `json:"features"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

// RoomNumber is a physical room instance with its blocked-out dates.
type RoomNumber struct {
	ID               string      `json:"id"`
	Number           int         `json:"number"`
	UnavailableDates []time.Time `json:"unavailableDates"`
}

// CreateRoomParams is the payload for creating a room under a hotel (admin only).
type CreateRoomParams struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	MaxPeople   int      `json:"maxPeople"`
	Description string   `json:"desc"`
	RoomNumbers []int    `json:"roomNumbers,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// BookingStatus is the lifecycle state of a booking as reported by the API.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// IsValid checks if the BookingStatus is one of the states the API emits.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s *BookingStatus) UnmarshalText(text []byte) error {
	v := BookingStatus(text)
	if !v.IsValid() {
		return fmt.Errorf("invalid booking status: %s", text)
	}
	*s = v
	return nil
}

func (s BookingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Booking is a reservation of a specific room number for a date range.
type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	UserName   string        `json:"userName"`
	UserEmail  string        `json:"userEmail"`
	RoomID     string        `json:"roomId"`
	RoomTitle  string        `json:"roomTitle"`
	RoomNumber int           `json:"roomNumber"`
	CheckIn    time.Time     `json:"checkIn"`
	CheckOut   time.Time     `json:"checkOut"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt,omitempty"`
}

// CreateBookingParams is the payload for placing a booking.
type CreateBookingParams struct {
	RoomID     string    `json:"roomId"`
	RoomNumber int       `json:"roomNumber"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	TotalPrice float64   `json:"totalPrice"`
}

// CreateUserParams is the payload for creating a user through the admin surface.
type CreateUserParams struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
	Role     Role    `json:"role"`
}

// UserUpdateParams carries optional fields for a partial admin update.
type UserUpdateParams struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}
