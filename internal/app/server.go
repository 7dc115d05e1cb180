package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aph138/residence/docs"
	"github.com/aph138/residence/internal/service"
	"github.com/aph138/residence/pkg/authentication"
	httpSwagger "github.com/swaggo/http-swagger"
)

// bookingsScope is the scope of the access grant issued after a confirmed access token
const bookingsScope = "bookings:read"

type Application struct {
	logger       *slog.Logger
	jwt          *authentication.JWT
	verification *service.Verification
	bookings     *service.Bookings
	contact      *service.Contact
	accessTTL    time.Duration
	corsOrigins  []string
	staticDir    string
	closers      []func(context.Context) error
}

type Option func(*Application)

func WithAccessTTL(d time.Duration) Option {
	return func(a *Application) { a.accessTTL = d }
}

func WithCORSOrigins(origins []string) Option {
	return func(a *Application) { a.corsOrigins = origins }
}

func WithStaticDir(dir string) Option {
	return func(a *Application) { a.staticDir = dir }
}

// WithCloser registers a function called on shutdown, after the server stopped.
func WithCloser(fn func(context.Context) error) Option {
	return func(a *Application) { a.closers = append(a.closers, fn) }
}

func NewApplication(logger *slog.Logger, jwt *authentication.JWT, verification *service.Verification, bookings *service.Bookings, contact *service.Contact, opts ...Option) *Application {
	a := &Application{
		logger:       logger,
		jwt:          jwt,
		verification: verification,
		bookings:     bookings,
		contact:      contact,
		accessTTL:    15 * time.Minute,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns the full http handler, middlewares included.
func (a *Application) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/send-otp", a.SendOTPHandler)
	mux.HandleFunc("POST /api/verify-otp", a.VerifyOTPHandler)
	mux.HandleFunc("POST /api/verify-booking-access", a.BookingAccessHandler)
	mux.HandleFunc("POST /api/verify-booking-token", a.BookingTokenHandler)
	mux.HandleFunc("GET /api/rooms", a.RoomsHandler)
	mux.HandleFunc("POST /api/bookings", a.CreateBookingHandler)
	mux.HandleFunc("GET /api/bookings/{id}", a.BookingByIDHandler)
	mux.Handle("GET /api/bookings", a.AuthMiddleware(http.HandlerFunc(a.BookingsByEmailHandler)))
	mux.HandleFunc("POST /api/contact", a.ContactHandler)
	mux.HandleFunc("GET /health", a.HealthHandler)
	mux.HandleFunc("/api/", a.NotFoundHandler)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)
	if a.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.staticDir)))
	}

	return a.RecoverMiddleware(a.LogMiddleware(a.CORSMiddleware(mux)))
}

func (a *Application) Run(addr string) {
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		a.logger.Info(fmt.Sprintf("starting server at %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(fmt.Sprintf("err when ListenAndServe %s", err.Error()))
			os.Exit(1)
		}
	}()

	// handling any interruption gracefully
	shutdown := make(chan any)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		a.logger.Info("starting graceful shutdown")
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.logger.Error(fmt.Errorf("err when shutting down the server %w", err).Error())
		}
		for _, closeFn := range a.closers {
			if err := closeFn(ctx); err != nil {
				a.logger.Error(fmt.Errorf("err when releasing resources %w", err).Error())
			}
		}
		close(shutdown)
	}()

	<-shutdown
	a.logger.Info("server is successfully shut down")
}
