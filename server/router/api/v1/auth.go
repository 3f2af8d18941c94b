package v1

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/itzayush21/travy/server/auth"
	"github.com/itzayush21/travy/store"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	CreatedTs int64  `json:"createdTs"`
}

func toUserResponse(user *store.User) *UserResponse {
	return &UserResponse{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedTs: user.CreatedTs,
	}
}

// Signup registers a new account and signs the caller in.
func (s *APIV1Service) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	if req.Nickname == "" {
		req.Nickname = strings.Split(req.Email, "@")[0]
	}

	existing, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check existing user")
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	user, err := s.Store.CreateUser(ctx, &store.User{
		UID:          uuid.NewString(),
		Email:        req.Email,
		Nickname:     req.Nickname,
		PasswordHash: string(hash),
		CreatedTs:    time.Now().Unix(),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}

	return s.respondWithToken(c, http.StatusCreated, user)
}

// Login verifies credentials and issues an access token.
func (s *APIV1Service) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	return s.respondWithToken(c, http.StatusOK, user)
}

func (s *APIV1Service) respondWithToken(c echo.Context, status int, user *store.User) error {
	token, err := auth.GenerateAccessToken(user.UID, s.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue access token")
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.AccessTokenDuration),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return c.JSON(status, &AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}
