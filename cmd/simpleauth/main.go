package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-auth/pkg/account"
	accountapi "github.com/tendant/simple-auth/pkg/account/api"
	"github.com/tendant/simple-auth/pkg/config"
	"github.com/tendant/simple-auth/pkg/emailverification"
	emailverificationapi "github.com/tendant/simple-auth/pkg/emailverification/api"
	"github.com/tendant/simple-auth/pkg/notification"
	"github.com/tendant/simple-auth/pkg/password"
	"github.com/tendant/simple-auth/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed loading config", "err", err)
		os.Exit(-1)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := cfg.DbConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(cfg.EmailConfig.ToSMTPConfig()),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed creating notification manager", "err", err)
		os.Exit(-1)
	}

	tokenService := token.NewService(
		token.NewPostgresRepository(pool),
		cfg.JwtConfig.Secret,
		token.WithIssuer(cfg.JwtConfig.Issuer),
		token.WithDefaultExpiry(cfg.JwtConfig.TokenExpiry()),
	)

	accountService := account.NewService(
		account.NewPostgresRepository(pool),
		password.NewBcryptHasher(),
		tokenService,
		account.WithPasswordPolicy(cfg.PasswordComplexityConfig.ToPolicy()),
		account.WithTokenTTL(cfg.JwtConfig.TokenExpiry()),
	)

	verificationService := emailverification.NewService(
		emailverification.NewPostgresRepository(pool),
		notificationManager,
		emailverification.WithOtpExpiry(cfg.OtpConfig.Expiry()),
		emailverification.WithOtpLength(cfg.OtpConfig.Length),
	)

	accountHandle := accountapi.NewHandler(accountService)
	verificationHandle := emailverificationapi.NewHandler(verificationService)

	server.R.Route("/auth", func(r chi.Router) {
		r.Post("/create", accountHandle.CreateAccount)
		r.Post("/login", accountHandle.Login)

		r.Group(func(r chi.Router) {
			r.Use(accountapi.RequireUser(accountService))
			r.Get("/logout", accountHandle.Logout)
			r.Get("/user_detail", accountHandle.GetUserDetail)
			r.Get("/get_email_otp", verificationHandle.RequestOtp)
			r.Get("/verify_email", verificationHandle.VerifyEmail)
		})
	})

	server.Run()
}
