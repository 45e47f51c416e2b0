package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/permauth/permauth-in-go/pkg/identity"
	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  store.User `json:"user"`
}

// RegisterAuthEndpoints registers registration, login and the current
// user profile endpoint.
func RegisterAuthEndpoints(srv *server.Server) {
	users := srv.Stores.Users
	issuer := srv.Issuer

	registerRoute(srv, "auth.register",
		&routemeta.Meta{Group: "AuthController", Method: "Register", Anonymous: true},
		"/auth/register", handleRegister(users), "POST")

	registerRoute(srv, "auth.login",
		&routemeta.Meta{Group: "AuthController", Method: "Login", Anonymous: true},
		"/auth/login", handleLogin(users, issuer), "POST")

	// No group means no permission is derived, but a valid token is
	// still required to get past the gate.
	registerRoute(srv, "auth.me",
		&routemeta.Meta{Method: "Me", NonActionable: true},
		"/auth/me", handleMe(users), "GET")
}

func handleRegister(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		if body.Username == "" || body.Email == "" || body.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Username, email and password are required.")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to register user.")
			return
		}

		user, err := users.CreateUser(body.Username, body.Email, string(hash))
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondWithError(w, http.StatusConflict, "Email already in use.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to register user.")
			return
		}

		respondWithJSON(w, http.StatusCreated, user)
	}
}

func handleLogin(users store.UsersStore, issuer tokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		creds, err := users.FetchCredentials(body.Email)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to log in.")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(body.Password)) != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}

		token, err := issuer.IssueToken(creds.UserID, creds.Email, creds.Username)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to log in.")
			return
		}

		respondWithJSON(w, http.StatusOK, LoginResponse{
			Token: token,
			User: store.User{
				ID:       creds.UserID,
				Username: creds.Username,
				Email:    creds.Email,
			},
		})
	}
}

func handleMe(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Invalid token.")
			return
		}

		profile, err := users.FetchProfile(id.UserID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found.")
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch profile.")
			return
		}

		respondWithJSON(w, http.StatusOK, profile)
	}
}

// tokenIssuer is the slice of authn.Issuer the login handler needs.
type tokenIssuer interface {
	IssueToken(userID int, email, username string) (string, error)
}
