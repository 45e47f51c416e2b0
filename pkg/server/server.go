package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/permauth/permauth-in-go/pkg/authn"
	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server/store"
)

// Stores bundles the storage interfaces the endpoints depend on.
type Stores struct {
	Authz       store.AuthzStore
	Permissions store.PermissionsStore
	Roles       store.RolesStore
	Users       store.UsersStore
	Health      store.HealthStore
}

type Server struct {
	Router   *mux.Router
	Registry *routemeta.Registry
	Issuer   *authn.Issuer
	Stores   Stores
	DB       *gorm.DB
	srv      *http.Server
}

func NewServer(
	issuer *authn.Issuer,
	stores Stores,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:   router,
		Registry: routemeta.NewRegistry(),
		Issuer:   issuer,
		Stores:   stores,
		DB:       db,
		srv:      srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
