package emailverification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-auth/pkg/notification"
	"github.com/tendant/simple-auth/pkg/otp"
)

// Service drives the email-verification flow: it issues short-lived
// passcodes over email and flips the user's email-verified flag when a
// passcode is consumed.
type Service struct {
	repo                Repository
	notificationManager *notification.NotificationManager
	otpExpiry           time.Duration
	otpLength           int
	now                 func() time.Time
}

// ServiceOption defines configuration options for the verification service.
type ServiceOption func(*Service)

// WithOtpExpiry sets the passcode expiration duration.
func WithOtpExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.otpExpiry = expiry
	}
}

// WithOtpLength sets the number of digits in generated passcodes.
func WithOtpLength(length int) ServiceOption {
	return func(s *Service) {
		s.otpLength = length
	}
}

// WithNowFunc overrides the clock, used by tests to simulate expiry.
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new email verification service.
func NewService(repo Repository, notificationManager *notification.NotificationManager, opts ...ServiceOption) *Service {
	s := &Service{
		repo:                repo,
		notificationManager: notificationManager,
		otpExpiry:           1 * time.Minute,
		otpLength:           otp.DefaultLength,
		now:                 time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RequestOtp generates a passcode, emails it to the user, and persists
// the record. The email goes out before anything is stored: a delivery
// failure persists nothing, while a storage failure after a successful
// send leaves the user with an unusable passcode and no compensating
// action; the user simply requests a new one. A new request replaces
// any passcode still pending for the user.
func (s *Service) RequestOtp(ctx context.Context, userID uuid.UUID, email, firstName string) error {
	code, err := otp.Generate(s.otpLength)
	if err != nil {
		slog.Error("Failed to generate OTP", "user_id", userID, "err", err)
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiresAt := s.now().UTC().Add(s.otpExpiry)

	err = s.notificationManager.Send(notification.EmailOtpNotice, notification.NotificationData{
		To: email,
		Data: map[string]string{
			"FirstName":     firstName,
			"Otp":           code,
			"ExpiryMinutes": fmt.Sprintf("%.0f", s.otpExpiry.Minutes()),
		},
	})
	if err != nil {
		slog.Error("Failed to send OTP email", "user_id", userID, "err", err)
		return ErrDeliveryFailed
	}

	if _, err := s.repo.ReplaceOtp(ctx, userID, email, code, expiresAt); err != nil {
		slog.Error("Failed to store OTP after email was sent", "user_id", userID, "err", err)
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	slog.Info("Email verification OTP sent", "user_id", userID, "expires_at", expiresAt)
	return nil
}

// VerifyOtp consumes a passcode for the user. On success the user's
// email-verified flag is set and the record deleted atomically. An
// expired passcode is deleted before ErrOtpExpired is returned, so a
// retry with the same code fails with ErrInvalidOtp.
func (s *Service) VerifyOtp(ctx context.Context, userID uuid.UUID, code string) error {
	rec, err := s.repo.GetOtpByUserAndCode(ctx, userID, code)
	if err != nil {
		if errors.Is(err, ErrInvalidOtp) {
			return ErrInvalidOtp
		}
		slog.Error("Failed to look up OTP", "user_id", userID, "err", err)
		return fmt.Errorf("failed to look up OTP: %w", err)
	}

	if rec.ExpiresAt.Before(s.now().UTC()) {
		if err := s.repo.DeleteOtp(ctx, rec.ID); err != nil {
			slog.Error("Failed to delete expired OTP", "otp_id", rec.ID, "err", err)
			return fmt.Errorf("failed to delete expired OTP: %w", err)
		}
		return ErrOtpExpired
	}

	if err := s.repo.ConsumeOtp(ctx, rec.ID, userID); err != nil {
		slog.Error("Failed to consume OTP", "otp_id", rec.ID, "user_id", userID, "err", err)
		return fmt.Errorf("failed to consume OTP: %w", err)
	}

	slog.Info("Email verified successfully", "user_id", userID)
	return nil
}
