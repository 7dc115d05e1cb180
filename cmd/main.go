package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aph138/residence/internal/app"
	"github.com/aph138/residence/internal/cache"
	"github.com/aph138/residence/internal/db"
	"github.com/aph138/residence/internal/entity"
	"github.com/aph138/residence/internal/notify"
	"github.com/aph138/residence/internal/service"
	"github.com/aph138/residence/pkg/authentication"
	"github.com/aph138/residence/pkg/clock"
	"github.com/aph138/residence/pkg/otp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Error(fmt.Sprintf("err when loading config: %s", err.Error()))
		os.Exit(1)
	}

	jwtKey := cfg.JWTKey
	if jwtKey == "" {
		// grants do not survive a restart without a configured key
		jwtKey, err = authentication.GenerateKey(32)
		if err != nil {
			logger.Error(fmt.Sprintf("err when generating key for jwt: %s", err.Error()))
			os.Exit(1)
		}
	}
	jwt, err := authentication.NewJWT(jwtKey)
	if err != nil {
		logger.Error(fmt.Sprintf("err when creating JWT instance: %s", err.Error()))
		os.Exit(1)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		logger.Error(fmt.Sprintf("err when opening %s database: %s", cfg.Store, err.Error()))
		os.Exit(1)
	}

	ctx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	var secrets cache.SecretStore
	if cfg.RedisAddr != "" {
		secrets, err = cache.NewRedis(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, clock.Real{})
		if err != nil {
			logger.Error(fmt.Sprintf("err when creating MyRedis instance: %s", err.Error()))
			os.Exit(1)
		}
	} else {
		memory := otp.NewOTP(clock.Real{})
		if cfg.SweepInterval > 0 {
			memory.StartCleanup(ctx, cfg.SweepInterval)
		}
		secrets = memory
	}

	var notifier notify.Notifier
	if cfg.EmailUser != "" && cfg.EmailPass != "" {
		notifier, err = notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass,
			fmt.Sprintf("%s <%s>", cfg.HotelName, cfg.EmailUser))
		if err != nil {
			logger.Error(fmt.Sprintf("err when creating smtp client: %s", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Warn("EMAIL_USER or EMAIL_PASS is not set, emails are written to the log")
		notifier = notify.NewLog(logger)
	}

	render := notify.Renderer{Hotel: cfg.HotelName, AdminURL: cfg.AdminURL, ContactPhone: cfg.ContactPhone}
	rooms := cache.NewRoomCache(cfg.RoomCacheTTL, clock.Real{})

	myApp := app.NewApplication(logger, jwt,
		service.NewVerification(secrets, notifier, render, cfg.OTPTTL, logger),
		service.NewBookings(database, rooms, notifier, render, cfg.InboxEmail(), clock.Real{}, logger),
		service.NewContact(notifier, render, cfg.InboxEmail(), logger),
		app.WithAccessTTL(cfg.AccessTTL),
		app.WithCORSOrigins(cfg.CORSOrigins),
		app.WithStaticDir(cfg.StaticDir),
		app.WithCloser(database.Close),
		app.WithCloser(secrets.Close),
	)
	myApp.Run(":" + cfg.Port)
}

func openDatabase(cfg *app.Config) (db.Database, error) {
	switch cfg.Store {
	case "mongo":
		var opt *options.ClientOptions
		if cfg.MongoUser != "" {
			opt = options.Client().SetAuth(options.Credential{Username: cfg.MongoUser, Password: cfg.MongoPass})
		}
		return db.NewMongo(cfg.MongoURI, cfg.MongoDB, cfg.DBTimeout, opt)
	case "postgres":
		return db.NewPostgres(cfg.PostgresDSN)
	default:
		return db.NewMemory(sampleRooms()...), nil
	}
}

// sampleRooms seeds the memory store so the site has something to show locally
func sampleRooms() []entity.Room {
	return []entity.Room{
		{ID: "standard", Name: "Standard Room", Description: "Queen bed, city view", Price: 250, Capacity: 2, Available: true},
		{ID: "family", Name: "Family Suite", Description: "Two bedrooms and a kitchenette", Price: 600, Capacity: 5, Available: true},
		{ID: "royal", Name: "Royal Suite", Description: "Top floor with private majlis", Price: 1200, Capacity: 4, Available: true},
	}
}
