package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/najdi/internal/config"
	"github.com/erazemk/najdi/internal/lifecycle"
	"github.com/erazemk/najdi/internal/model"
	"github.com/erazemk/najdi/internal/notify"
	"github.com/erazemk/najdi/internal/store"
	"github.com/erazemk/najdi/internal/uploads"
)

// ensureAdmin creates the admin account when the database has no users yet.
// It returns the generated password, or "" if nothing was created.
func ensureAdmin(ctx context.Context, database *sql.DB, username string) (string, error) {
	users, err := store.ListUsers(ctx, database)
	if err != nil {
		return "", err
	}
	if len(users) > 0 {
		return "", nil
	}

	password, err := generatePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if _, err := store.CreateUser(ctx, database, username, string(hash), "", "", model.RoleAdmin); err != nil {
		return "", fmt.Errorf("creating admin user: %w", err)
	}
	return password, nil
}

// printAdminCreated prints the bootstrap credentials to stdout.
func printAdminCreated(username, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("The admin can change it after logging in.")
	fmt.Println()
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

// newStorage returns the configured upload backend.
func newStorage(ctx context.Context, cfg config.UploadsConfig, database *sql.DB) (uploads.Storage, error) {
	if cfg.Backend != "s3" {
		return &uploads.DBStorage{DB: database}, nil
	}
	return uploads.NewS3Storage(ctx, uploads.S3Config{
		Bucket:       cfg.S3.Bucket,
		Region:       cfg.S3.Region,
		BaseEndpoint: cfg.S3.Endpoint,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
	})
}

// newDispatcher builds the owner notifier from the Twilio and Mailgun settings.
// Unconfigured transports stay disabled and fail every send.
func newDispatcher(cfg *config.Config) *notify.Dispatcher {
	sms := notify.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From)
	email := notify.NewMailgunSender(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.Mailgun.SenderEmail, cfg.Mailgun.SenderName)

	if !sms.IsEnabled() {
		slog.Warn("twilio not configured, owner SMS notifications will fail")
	}
	if !email.IsEnabled() {
		slog.Warn("mailgun not configured, owner email notifications will fail")
	}

	return &notify.Dispatcher{SMS: sms, Email: email, Timeout: cfg.Notify.Timeout}
}

var _ lifecycle.Notifier = (*notify.Dispatcher)(nil)
