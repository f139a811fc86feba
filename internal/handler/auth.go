package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/config"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/middleware"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/publisher"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/queue"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/repository"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/utils"
)

// AuthHandler bundles dependencies for the magic-link sign-in endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Tokens: t}
}

// ----- DTOs -----

type magicLinkReq struct {
	Email string `json:"email"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	Email   string `json:"email"`
	IsOwner bool   `json:"is_owner"`
}
type sessionResp struct {
	User   userPart  `json:"user"`
	Access tokenPart `json:"access"`
}

// RequestMagicLink handles POST /v1/auth/magic-link.  It stores a hashed
// one-time token and hands the sign-in link to the delivery queue.  The
// response is 202 regardless of whether the address is known; there are no
// accounts to enumerate.
func (h *AuthHandler) RequestMagicLink(c echo.Context) error {
	var req magicLinkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	login, err := utils.NewLoginToken(h.Cfg.LoginTokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue login token failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.StoreLogin(ctx, email, utils.HashLoginRaw(login.Raw), login.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save login token failed"})
	}
	// Stale rows pile up otherwise; failure here is harmless.
	if err := h.Tokens.PurgeExpired(ctx); err != nil {
		log.Printf("purge expired login tokens failed: %v", err)
	}

	link := h.Cfg.PublicURL + "/v1/auth/complete?token=" + login.Raw
	_ = publisher.PublishLoginLink(ctx, queue.LoginLinkEvent{
		Email:     email,
		Link:      link,
		ExpiresAt: login.Exp.Format(time.RFC3339),
	})

	return c.JSON(http.StatusAccepted, echo.Map{"message": "sign-in link sent, please check your inbox"})
}

// CompleteSignIn handles GET /v1/auth/complete?token=...  It redeems the
// one-time token and answers with a session JWT whose owner flag is decided
// by allowlist membership at this moment.
func (h *AuthHandler) CompleteSignIn(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("token"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	email, err := h.Tokens.RedeemLogin(ctx, utils.HashLoginRaw(raw))
	if err != nil {
		switch err {
		case repository.ErrNotFound, repository.ErrTokenExpired:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired sign-in link"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign-in failed"})
		}
	}

	isOwner := h.Cfg.IsOwner(email)
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, email, isOwner, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, sessionResp{
		User:   userPart{Email: email, IsOwner: isOwner},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me handles GET /v1/auth/me and returns the current session identity so
// the client can prefill the form email and gate owner affordances.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, userPart{
		Email:   middleware.SessionEmail(c),
		IsOwner: middleware.SessionIsOwner(c),
	})
}

// Logout handles POST /v1/auth/logout.  Sessions are stateless JWTs; the
// client discards its token and the short TTL bounds any leftover validity.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
