package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/om-khorwal/NotesFlow/internal/auth"
	"github.com/om-khorwal/NotesFlow/internal/database"
	"github.com/om-khorwal/NotesFlow/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

type AuthData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func validateRegisterRequest(req RegisterRequest) []ErrorDetail {
	var errs []ErrorDetail
	if !usernameRegexp.MatchString(req.Username) {
		errs = append(errs, ErrorDetail{Field: "username", Message: "Username must be 3-50 characters of letters, digits or underscores"})
	}
	if !emailRegexp.MatchString(req.Email) {
		errs = append(errs, ErrorDetail{Field: "email", Message: "Invalid email address"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, ErrorDetail{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

// setAuthCookie mirrors the bearer token into a cookie so browser clients
// can keep the session without storing the token themselves. Flags come
// from configuration, never hard-coded.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if s.config.Cookie.SameSite == "none" {
		sameSite = http.SameSiteNoneMode
	} else if s.config.Cookie.SameSite == "strict" {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Domain:   s.config.Cookie.Domain,
		MaxAge:   maxAge,
		Secure:   s.config.Cookie.Secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// @Summary      Register a new user
// @Description  Creates a user account with an empty profile and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "Registration data"
// @Success      200  {object}  APIResponse
// @Failure      400  {object}  APIResponse "Email or username already taken"
// @Failure      422  {object}  APIResponse "Validation error"
// @Failure      500  {object}  APIResponse
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateRegisterRequest(req); len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	var user *models.User

	// User row and its empty profile are created in one transaction, so a
	// registered user always has a profile.
	txErr := s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		var txErr error
		user, txErr = q.CreateUser(r.Context(), database.CreateUserParams{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hashedPassword,
		})
		if txErr != nil {
			return txErr
		}
		_, txErr = q.CreateProfile(r.Context(), user.ID)
		return txErr
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, database.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(txErr, database.ErrUsernameTaken):
			respondError(w, http.StatusBadRequest, "Username already taken")
		default:
			s.respondInternalError(w, txErr)
		}
		return
	}

	token, err := auth.GenerateJWT(user.ID, s.config.JWT.Secret, s.config.TokenTTL())
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	s.setAuthCookie(w, token, int(s.config.TokenTTL().Seconds()))
	respondSuccess(w, "Registration successful", AuthData{Token: token, User: user})
}

// @Summary      Log in
// @Description  Authenticates with email and password and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login credentials"
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse "Invalid email or password"
// @Failure      500  {object}  APIResponse
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateJWT(user.ID, s.config.JWT.Secret, s.config.TokenTTL())
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	s.setAuthCookie(w, token, int(s.config.TokenTTL().Seconds()))
	respondSuccess(w, "Login successful", AuthData{Token: token, User: user})
}

// @Summary      Log out
// @Description  Clears the auth cookie. Tokens are stateless, so the bearer token itself stays valid until it expires.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse
// @Router       /auth/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	s.setAuthCookie(w, "", -1)
	respondSuccess(w, "Logout successful", nil)
}

// @Summary      Get current user
// @Description  Returns the authenticated user's account data.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse
// @Router       /auth/profile [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from request")
		return
	}

	respondSuccess(w, "", user)
}
