package handlers

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"bidboard/db"
	"bidboard/internal/auth"
	"bidboard/internal/validate"
	"bidboard/models"
)

// RegisterHandler handles POST /api/auth/register.
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var in validate.RegisterInput
	if !h.decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		h.fail(w, err)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	user := &models.User{Email: in.Email, Name: in.Name, PasswordHash: hash}
	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			h.respondError(w, http.StatusBadRequest, CodeBadRequest, "Email is already registered")
			return
		}
		h.fail(w, err)
		return
	}

	h.startSession(w, user)
}

// LoginHandler handles POST /api/auth/login. Wrong email and wrong password
// produce the same response.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in validate.LoginInput
	if !h.decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		h.fail(w, err)
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), in.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid email or password")
			return
		}
		h.fail(w, err)
		return
	}
	if err := auth.CheckPassword(in.Password, user.PasswordHash); err != nil {
		h.respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid email or password")
		return
	}

	h.startSession(w, user)
}

// LogoutHandler handles POST /api/auth/logout by expiring the session
// cookie. Tokens are stateless, so logout is client-side only.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.respond(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) startSession(w http.ResponseWriter, user *models.User) {
	token, err := h.Sessions.Issue(user.ID)
	if err != nil {
		h.Logger.Error("issue session", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.respond(w, http.StatusOK, map[string]any{"user": user, "token": token})
}
