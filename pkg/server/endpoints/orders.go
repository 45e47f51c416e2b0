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

// Order is a demo resource showing the non-convention metadata paths:
// per-route skip flags and an explicit permission override.
type Order struct {
	ID      int    `json:"id"`
	Item    string `json:"item"`
	Shipped bool   `json:"shipped"`
}

type orderBook struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]Order
}

func newOrderBook() *orderBook {
	return &orderBook{
		nextID: 2,
		items: map[int]Order{
			1: {ID: 1, Item: "Keyboard"},
		},
	}
}

// RegisterOrdersEndpoints registers the demo order routes. Reading a
// single order and placing one are open to any authenticated caller;
// shipping requires the explicitly named "Orders.Ship" permission.
func RegisterOrdersEndpoints(srv *server.Server) {
	book := newOrderBook()

	registerRoute(srv, "orders.getall",
		&routemeta.Meta{Group: "OrdersController", Method: "GetAll"},
		"/orders", book.handleGetAll, "GET")

	registerRoute(srv, "orders.getbyid",
		&routemeta.Meta{Group: "OrdersController", Method: "GetById", Skip: true},
		"/orders/{id:[0-9]+}", book.handleGetById, "GET")

	registerRoute(srv, "orders.create",
		&routemeta.Meta{Group: "OrdersController", Method: "Create", Skip: true},
		"/orders", book.handleCreate, "POST")

	registerRoute(srv, "orders.ship",
		&routemeta.Meta{Group: "OrdersController", Method: "Ship", Permission: "Orders.Ship"},
		"/orders/{id:[0-9]+}/ship", book.handleShip, "POST")
}

func (b *orderBook) handleGetAll(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	orders := make([]Order, 0, len(b.items))
	for id := 1; id < b.nextID; id++ {
		if order, ok := b.items[id]; ok {
			orders = append(orders, order)
		}
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (b *orderBook) handleGetById(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	b.mu.RLock()
	order, ok := b.items[id]
	b.mu.RUnlock()

	if !ok {
		respondWithError(w, http.StatusNotFound, "Order not found.")
		return
	}
	respondWithJSON(w, http.StatusOK, order)
}

func (b *orderBook) handleCreate(w http.ResponseWriter, r *http.Request) {
	var order Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil || order.Item == "" {
		respondWithError(w, http.StatusBadRequest, "Order item is required.")
		return
	}

	b.mu.Lock()
	order.ID = b.nextID
	order.Shipped = false
	b.nextID++
	b.items[order.ID] = order
	b.mu.Unlock()

	respondWithJSON(w, http.StatusCreated, order)
}

func (b *orderBook) handleShip(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	b.mu.Lock()
	defer b.mu.Unlock()

	order, ok := b.items[id]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Order not found.")
		return
	}
	order.Shipped = true
	b.items[id] = order
	respondWithJSON(w, http.StatusOK, order)
}
