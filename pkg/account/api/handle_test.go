package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-auth/pkg/account"
	accountapi "github.com/tendant/simple-auth/pkg/account/api"
	"github.com/tendant/simple-auth/pkg/emailverification"
	emailverificationapi "github.com/tendant/simple-auth/pkg/emailverification/api"
	"github.com/tendant/simple-auth/pkg/notification"
	"github.com/tendant/simple-auth/pkg/password"
	"github.com/tendant/simple-auth/pkg/token"
)

type testEnv struct {
	router   *chi.Mux
	otpRepo  *emailverification.InMemRepository
	notifier *notification.MockNotifier
}

func setupRouter(t *testing.T) *testEnv {
	userRepo := account.NewInMemRepository()
	tokenService := token.NewService(token.NewInMemRepository(), "test-secret")
	accountService := account.NewService(userRepo, password.NewBcryptHasher(), tokenService)

	otpRepo := emailverification.NewInMemRepository()
	notifier := &notification.MockNotifier{}
	nm := notification.NewNotificationManager()
	nm.RegisterNotifier(notification.EmailSystem, notifier)
	require.NoError(t, nm.RegisterNotification(notification.EmailOtpNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Email Verification OTP",
		Text:    "Hi {{.FirstName}}, your passcode is {{.Otp}}",
	}))
	verificationService := emailverification.NewService(otpRepo, nm)

	accountHandle := accountapi.NewHandler(accountService)
	verificationHandle := emailverificationapi.NewHandler(verificationService)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
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

	return &testEnv{router: r, otpRepo: otpRepo, notifier: notifier}
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, email string) {
	rec := e.do(t, http.MethodPost, "/auth/create", "", accountapi.RegisterRequest{
		Email:     email,
		Password:  "Abc12345!",
		FirstName: "Jamie",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (e *testEnv) login(t *testing.T, email string) string {
	rec := e.do(t, http.MethodPost, "/auth/login", "", accountapi.LoginRequest{
		Email:    email,
		Password: "Abc12345!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp accountapi.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Bearer", resp.TokenType)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := setupRouter(t)

	env.register(t, "a@b.com")

	t.Run("DuplicateEmail", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/auth/create", "", accountapi.RegisterRequest{
			Email:    "a@b.com",
			Password: "Abc12345!",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/auth/create", "", accountapi.RegisterRequest{
			Email:    "weak@b.com",
			Password: "abc12345",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	tokenStr := env.login(t, "a@b.com")

	t.Run("UserDetail", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/user_detail", tokenStr, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp accountapi.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "a@b.com", resp.Email)
		assert.False(t, resp.EmailVerified)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("WrongPasswordAndUnknownEmailLookAlike", func(t *testing.T) {
		wrongPwd := env.do(t, http.MethodPost, "/auth/login", "", accountapi.LoginRequest{
			Email: "a@b.com", Password: "Wrong12345!",
		})
		unknown := env.do(t, http.MethodPost, "/auth/login", "", accountapi.LoginRequest{
			Email: "nobody@b.com", Password: "Abc12345!",
		})
		assert.Equal(t, http.StatusBadRequest, wrongPwd.Code)
		assert.Equal(t, wrongPwd.Code, unknown.Code)
		assert.JSONEq(t, wrongPwd.Body.String(), unknown.Body.String())
	})

	t.Run("LogoutRevokesToken", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/logout", tokenStr, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodGet, "/auth/user_detail", tokenStr, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/user_detail", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestEmailVerificationFlow(t *testing.T) {
	env := setupRouter(t)

	env.register(t, "verify@b.com")
	tokenStr := env.login(t, "verify@b.com")

	rec := env.do(t, http.MethodGet, "/auth/get_email_otp", tokenStr, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, env.notifier.SentNotifications, 1)
	assert.Equal(t, "verify@b.com", env.notifier.SentNotifications[0].To)
	code := env.notifier.SentNotifications[0].Data["Otp"]
	require.Regexp(t, `^[0-9]{6}$`, code)

	t.Run("WrongCode", func(t *testing.T) {
		wrong := "000000"
		if code == wrong {
			wrong = "000001"
		}
		rec := env.do(t, http.MethodGet, "/auth/verify_email?otp="+wrong, tokenStr, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingCode", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/verify_email", tokenStr, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("CorrectCode", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/verify_email?otp="+code, tokenStr, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("CodeConsumed", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/verify_email?otp="+code, tokenStr, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
