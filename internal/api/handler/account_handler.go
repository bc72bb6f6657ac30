package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bitforge/playground-api/internal/api/metrics"
	"github.com/bitforge/playground-api/internal/core/domain"
	"github.com/bitforge/playground-api/internal/core/ports"
)

// tokenCookie is the client-held identity cookie name; it must match what the
// Auth middleware reads.
const tokenCookie = "token"

type AccountHandler struct {
	accounts ports.AccountService
	tokenTTL time.Duration
}

func NewAccountHandler(accounts ports.AccountService, tokenTTL time.Duration) *AccountHandler {
	return &AccountHandler{accounts: accounts, tokenTTL: tokenTTL}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	UserID   string `json:"userId"   validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	Username   string   `json:"username"`
	Picture    string   `json:"picture"`
	Email      string   `json:"email"`
	SavedCodes []string `json:"savedCodes"`
}

func newProfileResponse(user *domain.User) profileResponse {
	saved := user.SavedCodes
	if saved == nil {
		saved = []string{}
	}
	return profileResponse{
		Username:   user.Username,
		Picture:    user.Picture,
		Email:      user.Email,
		SavedCodes: saved,
	}
}

// Signup creates a new account and sets the identity cookie.
//
// @Summary      Register a new account
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/user/signup [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, user, err := h.accounts.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "User already exists"})
		case errors.Is(err, domain.ErrInvalidUsername):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Some characters are not allowed"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
		}
		return err
	}

	metrics.SignupsTotal.Inc()
	metrics.TokensIssuedTotal.Inc()
	h.setTokenCookie(c, token)
	return c.JSON(http.StatusCreated, newProfileResponse(user))
}

// Login authenticates by email or username and sets the identity cookie.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials (userId is email or username)"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/user/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, user, err := h.accounts.Login(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "User not found"})
		case errors.Is(err, domain.ErrWrongPassword):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "wrong password"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	h.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, newProfileResponse(user))
}

// Logout clears the identity cookie. Tokens are stateless, so this succeeds
// whether or not a valid token was presented.
//
// @Summary      Logout
// @Tags         user
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/user/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	h.accounts.Logout(c.Request().Context(), userID, email)

	h.clearTokenCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// UserDetails returns the profile for the authenticated identity.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/user/details [get]
func (h *AccountHandler) UserDetails(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.UserDetails(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, newProfileResponse(user))
}

// MyCodes returns the authenticated identity's saved snippets, newest first.
//
// @Summary      List own saved codes
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   domain.SavedCode
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/user/my-codes [get]
func (h *AccountHandler) MyCodes(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	codes, err := h.accounts.MyCodes(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Cannot find user"})
		}
		return err
	}

	return c.JSON(http.StatusOK, codes)
}

func (h *AccountHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) clearTokenCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
