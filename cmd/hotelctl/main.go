package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	hotelclient "github.com/Chu-rill/hotel-management-client"
	"github.com/Chu-rill/hotel-management-client/internal/config"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/Chu-rill/hotel-management-client/pkg/pipeline"
	"github.com/Chu-rill/hotel-management-client/pkg/session"
	"github.com/joho/godotenv"
)

const usage = `usage: hotelctl <command> [args]

  login <email> <password>                 sign in and persist the session
  logout                                   clear the persisted session
  signup <username> <email> <password>     register a new account
  verify <email> <otp>                     confirm the signup OTP
  resend <email>                           resend the signup OTP
  status                                   show the current session
  hotels                                   list hotels
  hotel <id>                               show one hotel
  rooms <hotelID>                          list rooms of a hotel
  book <roomID> <number> <in> <out> <prc>  place a booking (dates YYYY-MM-DD)
  bookings <hotelID>                       list bookings of a hotel (admin)
  users                                    list users (admin)
`

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Error("opening session database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	client, err := hotelclient.New(
		hotelclient.WithLogger(logger),
		hotelclient.WithSqliteDB(db),
		hotelclient.WithBaseURL(cfg.APIBaseURL),
		hotelclient.WithNotifier(pipeline.NotifierFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, "! "+msg)
		})),
		hotelclient.WithNavigator(pipeline.NavigatorFunc(func(view string) {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		})),
	)
	if err != nil {
		logger.Error("starting hotel client", "err", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// views maps commands onto the view paths the route guard knows about.
var views = map[string]string{
	"login":    "/login",
	"signup":   "/signup",
	"verify":   "/otp",
	"resend":   "/resend-otp",
	"book":     "/bookings",
	"bookings": "/admin",
	"users":    "/admin",
}

func run(ctx context.Context, client *hotelclient.Client, cmd string, args []string) error {
	if view, ok := views[cmd]; ok {
		if d := client.Guard.Decide(view); !d.Allow {
			if d.RedirectTo == "/login" {
				return fmt.Errorf("%s requires a session: run hotelctl login first", cmd)
			}
			return fmt.Errorf("already signed in: run hotelctl logout first")
		}
	}

	switch cmd {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: hotelctl login <email> <password>")
		}
		user, err := client.Auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s)\n", user.Email, user.Role)

	case "logout":
		if err := client.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")

	case "signup":
		if len(args) != 3 {
			return fmt.Errorf("usage: hotelctl signup <username> <email> <password>")
		}
		pending, err := client.Auth.Signup(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("account created for %s, verify with: hotelctl verify %s <otp>\n",
			pending.Username, pending.Email)

	case "verify":
		if len(args) != 2 {
			return fmt.Errorf("usage: hotelctl verify <email> <otp>")
		}
		user, err := client.Auth.VerifyOTP(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("verified, signed in as %s\n", user.Email)

	case "resend":
		if len(args) != 1 {
			return fmt.Errorf("usage: hotelctl resend <email>")
		}
		msg, err := client.Auth.ResendOTP(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(msg)

	case "status":
		printStatus(client.Sessions.Read())

	case "hotels":
		list, err := client.Hotels.List(ctx)
		if err != nil {
			return err
		}
		for _, h := range list {
			fmt.Printf("%s\t%s\t%s\n", h.ID, h.Name, h.Location)
		}

	case "hotel":
		if len(args) != 1 {
			return fmt.Errorf("usage: hotelctl hotel <id>")
		}
		h, err := client.Hotels.Get(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\nrating %.1f\n%s\n", h.Name, h.Location, h.Rating, h.Description)

	case "rooms":
		if len(args) != 1 {
			return fmt.Errorf("usage: hotelctl rooms <hotelID>")
		}
		rooms, err := client.Hotels.ListRooms(ctx, args[0])
		if err != nil {
			return err
		}
		for _, r := range rooms {
			fmt.Printf("%s\t%s\t%.2f\tsleeps %d\n", r.ID, r.Title, r.Price, r.MaxPeople)
		}

	case "book":
		if len(args) != 5 {
			return fmt.Errorf("usage: hotelctl book <roomID> <number> <checkin> <checkout> <price>")
		}
		params, err := parseBooking(args)
		if err != nil {
			return err
		}
		b, err := client.Bookings.Create(ctx, params)
		if err != nil {
			return err
		}
		fmt.Printf("booked %s room %d, status %s\n", b.RoomTitle, b.RoomNumber, b.Status)

	case "bookings":
		if len(args) != 1 {
			return fmt.Errorf("usage: hotelctl bookings <hotelID>")
		}
		list, err := client.Bookings.ListByHotel(ctx, args[0])
		if err != nil {
			return err
		}
		for _, b := range list {
			fmt.Printf("%s\t%s\t%s → %s\t%s\n", b.ID, b.UserEmail,
				b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), b.Status)
		}

	case "users":
		list, err := client.Users.List(ctx)
		if err != nil {
			return err
		}
		for _, u := range list {
			fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

func printStatus(s *session.Session) {
	if s == nil {
		fmt.Println("not signed in")
		return
	}
	fmt.Printf("signed in as %s (%s)\n", s.User.Email, s.User.Role)
	if exp, ok := session.TokenExpiry(s.Token); ok {
		fmt.Printf("token expires %s\n", exp.Format(time.RFC3339))
	}
}

func parseBooking(args []string) (models.CreateBookingParams, error) {
	var params models.CreateBookingParams
	params.RoomID = args[0]

	if _, err := fmt.Sscanf(args[1], "%d", &params.RoomNumber); err != nil {
		return params, fmt.Errorf("room number must be an integer: %w", err)
	}

	checkIn, err := time.Parse("2006-01-02", args[2])
	if err != nil {
		return params, fmt.Errorf("check-in date: %w", err)
	}
	checkOut, err := time.Parse("2006-01-02", args[3])
	if err != nil {
		return params, fmt.Errorf("check-out date: %w", err)
	}
	if !checkOut.After(checkIn) {
		return params, fmt.Errorf("check-out must be after check-in")
	}
	params.CheckIn = checkIn
	params.CheckOut = checkOut

	if _, err := fmt.Sscanf(args[4], "%f", &params.TotalPrice); err != nil {
		return params, fmt.Errorf("price must be a number: %w", err)
	}

	return params, nil
}
