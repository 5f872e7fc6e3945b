package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-auth/pkg/account"
)

// Handler exposes the account operations over HTTP.
type Handler struct {
	service *account.Service
}

// NewHandler creates a new account API handler.
func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

// CreateAccount handles POST /create
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "err", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Email and password are required"})
		return
	}

	user, err := h.service.Register(r.Context(), account.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: fmt.Sprintf("Email address %s already in use", req.Email)})
		case errors.Is(err, account.ErrWeakPassword):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
		default:
			slog.Error("Failed to create account", "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "Account creation failed"})
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, MessageResponse{Message: fmt.Sprintf("Account %s created successfully", user.Email)})
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "err", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, tokenStr, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "Wrong Email or Password"})
			return
		}
		slog.Error("Failed to log in", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Login failed"})
		return
	}

	var userResp UserResponse
	copier.Copy(&userResp, user)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, LoginResponse{
		User:      userResp,
		Token:     tokenStr,
		TokenType: "Bearer",
		Message:   fmt.Sprintf("Login to %s successful", user.Email),
	})
}

// Logout handles GET /logout; it revokes the presented token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenStr, ok := TokenFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Invalid token"})
		return
	}

	if err := h.service.Logout(r.Context(), tokenStr); err != nil {
		slog.Error("Failed to log out", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Logout failed"})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Logged out successfully"})
}

// GetUserDetail handles GET /user_detail
func (h *Handler) GetUserDetail(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Error: "Invalid token"})
		return
	}

	var userResp UserResponse
	copier.Copy(&userResp, user)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, userResp)
}
