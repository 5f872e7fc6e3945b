// Package emailverification implements OTP-based verification of a
// user's email address.
//
// A verification request emails the user a short-lived numeric passcode
// and stores one pending OTP record per user; a new request replaces
// any passcode still pending. Verifying a passcode consumes the record
// and flips the user's email-verified flag in a single transaction.
// Expired passcodes are deleted lazily when they are presented.
//
// # Basic Usage
//
//	repo := emailverification.NewPostgresRepository(pool)
//	service := emailverification.NewService(
//		repo,
//		notificationManager,
//		emailverification.WithOtpExpiry(1*time.Minute),
//	)
//
//	// Send a passcode
//	err := service.RequestOtp(ctx, user.ID, user.Email, user.FirstName)
//
//	// Consume it
//	err = service.VerifyOtp(ctx, user.ID, "123456")
package emailverification
