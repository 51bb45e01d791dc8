package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mserban/atelier/internal/application/users"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
	"github.com/mserban/atelier/internal/infrastructure/http/respond"
)

// SessionCookie is how the session token travels back to the browser.
const SessionCookie = "access_token"

// UsersHandler handles registration and login. Both set the session
// cookie on success.
type UsersHandler struct {
	register *users.Register
	login    *users.Login
	respond  *respond.Responder
	devMode  bool
}

func NewUsersHandler(register *users.Register, login *users.Login, rp *respond.Responder, devMode bool) *UsersHandler {
	return &UsersHandler{register: register, login: login, respond: rp, devMode: devMode}
}

// Password max is 72: bcrypt rejects longer inputs, so anything beyond
// that has to fail as a field error rather than at hash time.
type registerRequest struct {
	Name           string `json:"name" validate:"required,min=4,max=128"`
	Email          string `json:"email" validate:"required,email,min=4,max=128"`
	Password       string `json:"password" validate:"required,min=4,max=72"`
	MasterPassword string `json:"masterPassword" validate:"required"`
}

func (r *registerRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.MasterPassword = strings.TrimSpace(r.MasterPassword)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,min=4,max=128"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

func (r *loginRequest) trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// userResponse is the JSON shape for successful register and login.
// Never carries the password hash.
type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates an account and starts a session.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, r, domerrors.Schema(map[string]string{"body": "Corpul cererii nu este valid"}))
		return
	}
	req.trim()
	if err := checkStruct(req); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	result, err := h.register.Execute(r.Context(), users.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		MasterPassword: req.MasterPassword,
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	h.setSessionCookie(w, result)
	h.respond.JSON(w, http.StatusOK, userResponse{Name: result.User.Name, Email: result.User.Email})
}

// Login authenticates an existing account and starts a session.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, r, domerrors.Schema(map[string]string{"body": "Corpul cererii nu este valid"}))
		return
	}
	req.trim()
	if err := checkStruct(req); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	result, err := h.login.Execute(r.Context(), users.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	h.setSessionCookie(w, result)
	h.respond.JSON(w, http.StatusOK, userResponse{Name: result.User.Name, Email: result.User.Email})
}

// setSessionCookie stores the bearer token in an HttpOnly cookie. The
// cookie expires slightly before the token so the browser never presents
// a token the server would reject.
func (h *UsersHandler) setSessionCookie(w http.ResponseWriter, result *users.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "Bearer " + result.Token,
		Path:     "/",
		Expires:  result.TokenExpiresAt,
		HttpOnly: true,
		Secure:   !h.devMode,
		SameSite: http.SameSiteLaxMode,
	})
}
