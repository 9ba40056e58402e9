package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dkrylov/items-api/internal/model"
	"github.com/dkrylov/items-api/internal/service"
)

// Version is the application version.
const Version = "1.0.0"

// itemRequest is the request body for create and update. Name stays a
// pointer: a missing field, an explicit null, and an empty string all mean
// "no name supplied" to the update operation, while create passes whatever
// arrived straight through.
type itemRequest struct {
	Name *string `json:"name"`
}

// RESTHandler handles REST API requests for items.
type RESTHandler struct {
	items  *service.Service
	logger *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance.
func NewRESTHandler(items *service.Service, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		items:  items,
		logger: logger,
	}
}

// RegisterRoutes registers the REST API routes with the router. Fixed paths
// must be registered before the /{id} routes; mux matches in registration
// order, so /health would otherwise be captured as an id.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)
	router.HandleFunc("/", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/{id}", h.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.UpdateItem).Methods(http.MethodPut)
	router.HandleFunc("/{id}", h.DeleteItem).Methods(http.MethodDelete)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// ReadyCheck handles GET /ready requests.
func (h *RESTHandler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
}

// ListItems handles GET / requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /{id} requests.
func (h *RESTHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get item")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST / requests.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	item, err := h.items.Create(r.Context(), input.Name)
	if err != nil {
		h.handleServiceError(w, err, "create item")
		return
	}

	h.writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /{id} requests.
func (h *RESTHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	input, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	item, err := h.items.Update(r.Context(), id, input.Name)
	if err != nil {
		h.handleServiceError(w, err, "update item")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /{id} requests.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.items.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete item")
		return
	}

	h.writeMessage(w, http.StatusOK, model.MessageItemDeleted)
}

// decodeItemRequest decodes a create/update body. An empty body means "no
// name supplied" and is not an error; malformed JSON is rejected here, as a
// transport concern, before the operation runs.
func (h *RESTHandler) decodeItemRequest(w http.ResponseWriter, r *http.Request) (itemRequest, bool) {
	var input itemRequest

	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return itemRequest{}, false
	}

	return input, true
}

// handleServiceError maps service errors to HTTP responses. The service
// exposes a single failure kind: anything that does not resolve to a stored
// item is a 404 with a fixed message.
func (h *RESTHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, service.ErrNotFound) {
		h.writeMessage(w, http.StatusNotFound, model.MessageItemNotFound)
		return
	}

	h.logger.Error("item operation failed", zap.String("operation", operation), zap.Error(err))
	h.writeMessage(w, http.StatusInternalServerError, "internal server error")
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeMessage writes a fixed-message response with the given status code.
func (h *RESTHandler) writeMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, model.MessageResponse{Message: message})
}
