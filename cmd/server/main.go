package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelbooking/internal/api"
	"hotelbooking/internal/auth"
	"hotelbooking/internal/config"
	"hotelbooking/internal/db"
	"hotelbooking/internal/logging"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/service"
	"hotelbooking/internal/views"
	"hotelbooking/internal/websocket"

	"github.com/gorilla/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logs := logging.NewBuffer(logging.DefaultCapacity, os.Stderr)
	logger := logs.Logger()

	conn, err := db.Open(cfg.StorageDSN)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer conn.Close()
	storage := repository.NewStorageRepository(conn, db.DriverFor(cfg.StorageDSN))

	sealer, err := auth.NewSealer(cfg.StorageSecret)
	if err != nil {
		log.Fatalf("Failed to set up storage sealing: %v", err)
	}
	session, err := auth.NewSessionStore(storage, sealer)
	if err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	// the backend keeps the cart in a session cookie
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("Failed to create cookie jar: %v", err)
	}
	backend := &http.Client{
		Jar:       jar,
		Timeout:   cfg.HTTPTimeout,
		Transport: auth.NewBearerTransport(session, nil),
	}
	client := repository.NewAPIClient(cfg.APIBaseURL, backend)

	bookingRepo := repository.NewBookingRepository(client)
	roomRepo := repository.NewRoomRepository(client)
	adminRepo := repository.NewAdminRepository(client)
	authRepo := repository.NewAuthRepository(client)
	healthRepo := repository.NewHealthRepository(client)

	toasts := service.NewToastService(logger)
	stripe := service.NewStripeService(cfg.StripePublishableKey, cfg.StripeAPIURL, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	sender := service.NewSenderService(cfg, logger)
	defer sender.Wait()

	bus := service.NewBookingStateService(logger)
	cartSvc := service.NewCartService(bookingRepo, session, storage, toasts, logger)
	checkoutSvc := service.NewCheckoutService(bookingRepo, cartSvc, stripe, bus, sender, session, toasts, logger, cfg.EmptyCartRedirectDelay)
	bookingSvc := service.NewBookingService(bookingRepo, storage, session, toasts, logger)
	adminSvc := service.NewAdminService(adminRepo, roomRepo, session, toasts, logger)
	authSvc := service.NewAuthService(authRepo, session, cartSvc, toasts, logger)
	roomSvc := service.NewRoomService(roomRepo, logger)

	health := service.NewHealthMonitor(healthRepo, logger)
	if err := health.Start(cfg.HealthCheckSchedule); err != nil {
		log.Fatalf("Failed to start health monitor: %v", err)
	}
	defer health.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := views.NewApp(ctx, session, logger)
	defer app.Close()
	home := views.NewHome(roomSvc, health)
	rooms := views.NewRooms(roomSvc, cartSvc, app)
	cart := views.NewCart(cartSvc, app)
	checkout := views.NewCheckout(checkoutSvc, app)
	bookings := views.NewBookings(bookingSvc, bus, logger)
	profile := views.NewProfile(bookingSvc, session)
	admin := views.NewAdmin(adminSvc, app)

	app.Register("/", home)
	app.Register("/rooms", rooms)
	app.Register("/cart", cart)
	app.RegisterProtected("/checkout", checkout)
	app.RegisterProtected("/bookings", bookings)
	app.RegisterProtected("/profile", profile)
	app.RegisterAdmin("/admin", admin)

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)
	hub.Follow(ctx, bus)

	router := api.NewRouter(api.Handlers{
		User:     api.NewUserHandler(app, roomSvc, home, rooms, cart, bookings, profile),
		Checkout: api.NewCheckoutHandler(app, checkout),
		Admin:    api.NewAdminHandler(app, admin),
		Auth:     api.NewAuthHandler(app, authSvc),
		System:   api.NewSystemHandler(app, health, toasts, logs),
		Live:     hub.ServeWS,
	}, session)


	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, api.NewCORS(router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s (backend %s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
