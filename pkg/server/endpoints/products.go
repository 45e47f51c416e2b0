package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/permauth/permauth-in-go/pkg/routemeta"
	"github.com/permauth/permauth-in-go/pkg/server"
)

// Product is a demo resource guarded by convention-derived permissions
// (Products.GetAll, Products.GetById, Products.Create, Products.Update,
// Products.Delete).
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// productCatalog is an in-memory demo store. Real resources would live
// behind a storage interface; these exist to exercise the gate.
type productCatalog struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]Product
}

func newProductCatalog() *productCatalog {
	return &productCatalog{
		nextID: 3,
		items: map[int]Product{
			1: {ID: 1, Name: "Keyboard", Price: 49.90},
			2: {ID: 2, Name: "Monitor", Price: 219.00},
		},
	}
}

// RegisterProductsEndpoints registers the demo product CRUD routes.
func RegisterProductsEndpoints(srv *server.Server) {
	catalog := newProductCatalog()

	registerRoute(srv, "products.getall",
		&routemeta.Meta{Group: "ProductsController", Method: "GetAll"},
		"/products", catalog.handleGetAll, "GET")

	registerRoute(srv, "products.getbyid",
		&routemeta.Meta{Group: "ProductsController", Method: "GetById"},
		"/products/{id:[0-9]+}", catalog.handleGetById, "GET")

	registerRoute(srv, "products.create",
		&routemeta.Meta{Group: "ProductsController", Method: "Create"},
		"/products", catalog.handleCreate, "POST")

	registerRoute(srv, "products.update",
		&routemeta.Meta{Group: "ProductsController", Method: "Update"},
		"/products/{id:[0-9]+}", catalog.handleUpdate, "PUT")

	registerRoute(srv, "products.delete",
		&routemeta.Meta{Group: "ProductsController", Method: "Delete"},
		"/products/{id:[0-9]+}", catalog.handleDelete, "DELETE")
}

func (c *productCatalog) handleGetAll(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]Product, 0, len(c.items))
	for id := 1; id < c.nextID; id++ {
		if product, ok := c.items[id]; ok {
			products = append(products, product)
		}
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (c *productCatalog) handleGetById(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c.mu.RLock()
	product, ok := c.items[id]
	c.mu.RUnlock()

	if !ok {
		respondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

func (c *productCatalog) handleCreate(w http.ResponseWriter, r *http.Request) {
	var product Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil || product.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Product name is required.")
		return
	}

	c.mu.Lock()
	product.ID = c.nextID
	c.nextID++
	c.items[product.ID] = product
	c.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, product)
}

func (c *productCatalog) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var product Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil || product.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Product name is required.")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		respondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}
	product.ID = id
	c.items[id] = product
	respondWithJSON(w, http.StatusOK, product)
}

func (c *productCatalog) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		respondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}
	delete(c.items, id)
	w.WriteHeader(http.StatusNoContent)
}
