package devserver

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type loginResponse struct {
	Token tokenResponse `json:"token"`
	User  any           `json:"user"`
}

// Me returns the current principal derived from the session cookie.
func (h *handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, u.User)
}

// Login verifies credentials and sets the session cookie. Bad credentials
// return 400 with no hint of whether the account exists.
func (h *handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	u, err := h.store.UserByEmail(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.auth.issue(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	h.auth.setCookie(w, token)
	h.store.TouchLogin(u.ID)

	// The cookie is the primary delivery; the body exists for parity with the
	// real backend and is ignored by the client.
	writeJSON(w, http.StatusOK, loginResponse{
		Token: tokenResponse{AccessToken: token, TokenType: "bearer"},
		User:  u.User,
	})
}

// Logout deletes the session cookie. The route is authenticated so an
// anonymous caller gets 401 rather than a silent success.
func (h *handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.clearCookie(w)
	writeJSON(w, http.StatusOK, messageEnvelope{Message: "Logged out successfully"})
}

// CreateUser registers an account and logs it in by setting the cookie on
// the 201 response.
func (h *handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration payload")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	u, err := h.store.CreateUser(req.Email, hash)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	token, err := h.auth.issue(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	h.auth.setCookie(w, token)

	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
