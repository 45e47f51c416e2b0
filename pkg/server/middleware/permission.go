// Package middleware contains the permission gate that guards every
// route registered on the server.
package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/permauth/permauth-in-go/pkg/authn"
	"github.com/permauth/permauth-in-go/pkg/identity"
	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// TokenParser turns a raw bearer token into a verified identity.
// Satisfied by authn.Issuer.
type TokenParser interface {
	ParseIdentity(tokenString string) (*identity.Identity, error)
}

// PermissionGate enforces RBAC per request. It resolves the route's
// required permission from the registration table, extracts the caller
// identity from the bearer token, and checks the user→role→permission
// graph before forwarding.
type PermissionGate struct {
	Registry *routemeta.Registry
	Parser   TokenParser
	Authz    store.AuthzStore
}

func NewPermissionGate(registry *routemeta.Registry, parser TokenParser, authz store.AuthzStore) *PermissionGate {
	return &PermissionGate{Registry: registry, Parser: parser, Authz: authz}
}

type errorResponse struct {
	Error              string `json:"error"`
	RequiredPermission string `json:"requiredPermission,omitempty"`
}

// Middleware returns the HTTP middleware implementing the gate.
//
// A request moves through at most four steps: bypass check (skip and
// anonymous routes never see credential extraction), credential
// extraction, permission resolution, membership query. Requests that do
// not map to a registered route resolve to "no permission required" and
// pass through once their credential is verified.
func (g *PermissionGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := g.routeMeta(r)

		if meta != nil && (meta.Skip || meta.Anonymous) {
			g.logDecision(r, DecisionBypass, "")
			next.ServeHTTP(w, r)
			return
		}

		rawToken, err := authn.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			g.logDecision(r, DecisionUnauthenticated, "")
			respondError(w, http.StatusUnauthorized, errorResponse{
				Error: "Authorization token is required.",
			})
			return
		}

		id, err := g.Parser.ParseIdentity(rawToken)
		if err != nil {
			if !errors.Is(err, authn.ErrInvalidToken) {
				log.Printf("gate: unexpected token parse failure: %v", err)
			}
			g.logDecision(r, DecisionUnauthenticated, "")
			respondError(w, http.StatusUnauthorized, errorResponse{
				Error: "Invalid token.",
			})
			return
		}

		r = r.WithContext(identity.Set(r.Context(), id))

		required, ok := routemeta.Required(meta)
		if !ok {
			g.logDecision(r, DecisionAllowed, "")
			next.ServeHTTP(w, r)
			return
		}

		if !g.Authz.HasPermission(id.UserID, required) {
			g.logDecision(r, DecisionDenied, required)
			respondError(w, http.StatusForbidden, errorResponse{
				Error:              "Access denied.",
				RequiredPermission: required,
			})
			return
		}

		g.logDecision(r, DecisionAllowed, required)
		next.ServeHTTP(w, r)
	})
}

func (g *PermissionGate) routeMeta(r *http.Request) *routemeta.Meta {
	route := mux.CurrentRoute(r)
	if route == nil {
		return nil
	}
	name := route.GetName()
	if name == "" {
		return nil
	}
	meta, ok := g.Registry.Lookup(name)
	if !ok {
		return nil
	}
	return meta
}

// logDecision records the outcomes that plain request logging would
// hide: denials, bypasses, and passes where no permission was enforced.
// Ordinary permitted requests stay quiet.
func (g *PermissionGate) logDecision(r *http.Request, decision Decision, required string) {
	switch decision {
	case DecisionDenied:
		log.Printf("gate: %s %s %s (required %s)", r.Method, r.URL.Path, decision, required)
	case DecisionBypass:
		log.Printf("gate: %s %s %s", r.Method, r.URL.Path, decision)
	case DecisionAllowed:
		if required == "" {
			log.Printf("gate: %s %s %s (no permission required)", r.Method, r.URL.Path, decision)
		}
	}
}

func respondError(w http.ResponseWriter, code int, body errorResponse) {
	response, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
