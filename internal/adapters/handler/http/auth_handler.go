package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type AuthHandler struct {
	authService  ports.AuthService
	cookieDomain string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieDomain string, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieDomain: cookieDomain,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

type registerRequest struct {
	Handle      string `json:"handle"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Register godoc
// @Summary      Creates a new account
// @Tags         users
// @Accept       json,mpfd
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /users/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseRegister(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// parseRegister accepts either a JSON body or a multipart form carrying
// optional avatar and cover image files.
func (h *AuthHandler) parseRegister(r *http.Request) (ports.RegisterInput, error) {
	var input ports.RegisterInput

	if mediaType(r) != "multipart/form-data" {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return input, domain.ErrInvalidRequest
		}
		input.Handle = req.Handle
		input.Email = req.Email
		input.DisplayName = req.DisplayName
		input.Password = req.Password
		return input, nil
	}

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		return input, domain.ErrInvalidRequest
	}
	input.Handle = r.FormValue("handle")
	input.Email = r.FormValue("email")
	input.DisplayName = r.FormValue("display_name")
	input.Password = r.FormValue("password")

	if upload, err := formFile(r, "avatar"); err == nil {
		input.Avatar = upload
	}
	if upload, err := formFile(r, "cover_image"); err == nil {
		input.CoverImage = upload
	}
	return input, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

// Login godoc
// @Summary      Verifies credentials and starts a session
// @Description  Sets the accessToken and refreshToken cookies and returns both tokens in the body.
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	user, pair, err := h.authService.Login(r.Context(), ports.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusOK, sessionResponse{User: user, Tokens: pair})
}

// Logout godoc
// @Summary      Ends the session
// @Description  Clears the stored refresh token and expires both cookies. Idempotent.
// @Tags         users
// @Success      200
// @Failure      401
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		writeError(w, r, err)
		return
	}

	h.expireSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh godoc
// @Summary      Rotates the token pair
// @Description  Accepts the refresh token from the cookie or the body; the presented token is invalidated.
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /users/refresh-token [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		// The body is optional; a decode failure just means no token.
		_ = json.NewDecoder(r.Body).Decode(&req)
		token = req.RefreshToken
	}

	pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		h.expireSessionCookies(w)
		writeError(w, r, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusOK, pair)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword godoc
// @Summary      Changes the account password
// @Description  Verifies the old password, re-hashes the new one and invalidates the current session.
// @Tags         users
// @Accept       json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /users/change-password [post]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r)
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidRequest)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	// The session is gone; the cookies should not outlive it.
	h.expireSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	http.SetCookie(w, h.sessionCookie(accessTokenCookie, pair.AccessToken, int(h.accessTTL.Seconds())))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, pair.RefreshToken, int(h.refreshTTL.Seconds())))
}

func (h *AuthHandler) expireSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.sessionCookie(accessTokenCookie, "", -1))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, "", -1))
}

func (h *AuthHandler) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
