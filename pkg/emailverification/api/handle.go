package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	accountapi "github.com/tendant/simple-auth/pkg/account/api"
	"github.com/tendant/simple-auth/pkg/emailverification"
)

// Handler exposes the email verification flow over HTTP. Both routes
// require an authenticated user resolved by accountapi.RequireUser.
type Handler struct {
	service *emailverification.Service
}

// NewHandler creates a new email verification API handler.
func NewHandler(service *emailverification.Service) *Handler {
	return &Handler{service: service}
}

// RequestOtp handles GET /get_email_otp
func (h *Handler) RequestOtp(w http.ResponseWriter, r *http.Request) {
	user, ok := accountapi.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, accountapi.ErrorResponse{Error: "Invalid token"})
		return
	}

	err := h.service.RequestOtp(r.Context(), user.ID, user.Email, user.FirstName)
	if err != nil {
		if errors.Is(err, emailverification.ErrDeliveryFailed) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, accountapi.ErrorResponse{Error: "Error sending OTP. Try again"})
			return
		}
		slog.Error("Failed to store OTP", "user_id", user.ID, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, accountapi.ErrorResponse{Error: "Error storing OTP. Try again"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, accountapi.MessageResponse{Message: "Email Verification OTP sent"})
}

// VerifyEmail handles GET /verify_email?otp=123456
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	user, ok := accountapi.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, accountapi.ErrorResponse{Error: "Invalid token"})
		return
	}

	code := r.URL.Query().Get("otp")
	if code == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, accountapi.ErrorResponse{Error: "OTP is required"})
		return
	}

	err := h.service.VerifyOtp(r.Context(), user.ID, code)
	if err != nil {
		switch {
		case errors.Is(err, emailverification.ErrInvalidOtp):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, accountapi.ErrorResponse{Error: "Invalid OTP"})
		case errors.Is(err, emailverification.ErrOtpExpired):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, accountapi.ErrorResponse{Error: "OTP has expired"})
		default:
			slog.Error("Failed to verify email", "user_id", user.ID, "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, accountapi.ErrorResponse{Error: "An error occurred while verifying email"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, accountapi.MessageResponse{Message: fmt.Sprintf("Email %s verified successfully", user.Email)})
}
