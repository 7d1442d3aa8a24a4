package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// unpaginated is the pageSize sentinel asking for the whole collection.
const unpaginated = -1

type RespondJSONFunc func(w http.ResponseWriter, status int, payload interface{})

type RespondErrorFunc func(w http.ResponseWriter, status int, message string)

// Service is what the handler needs from a repository.
type Service[T any] interface {
	List(ctx context.Context) ([]T, error)
	ListPage(ctx context.Context, page, pageSize int) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (T, bool, error)
	Create(ctx context.Context, req CreateRequest[T]) (T, Mode, error)
	Upsert(ctx context.Context, entity T) (T, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler[T Entity[T]] struct {
	entity       string
	basePath     string
	service      Service[T]
	respondJSON  RespondJSONFunc
	respondError RespondErrorFunc
	logger       zerolog.Logger
}

// NewHandler builds the HTTP handler for one entity type. basePath is the
// collection path used in Location headers. logger may be nil.
func NewHandler[T Entity[T]](
	entity string,
	basePath string,
	service Service[T],
	respondJSON RespondJSONFunc,
	respondError RespondErrorFunc,
	logger *zerolog.Logger,
) *Handler[T] {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}

	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("entity", entity).Logger()
	}

	return &Handler[T]{
		entity:       entity,
		basePath:     basePath,
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
		logger:       l,
	}
}

// Register wires the collection and item routes under the handler's base path.
func (h *Handler[T]) Register(mux *http.ServeMux) {
	h.RegisterAt(mux, h.basePath)
}

// RegisterAt serves the same routes under another path. Location headers keep
// pointing at the base path.
func (h *Handler[T]) RegisterAt(mux *http.ServeMux, basePath string) {
	mux.HandleFunc("GET "+basePath, h.List)
	mux.HandleFunc("POST "+basePath, h.Create)
	mux.HandleFunc("PUT "+basePath, h.Put)
	mux.Handle("GET "+basePath+"/{id}", h.requireID(h.Get))
	mux.Handle("DELETE "+basePath+"/{id}", h.requireID(h.Delete))
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid page value")
		return
	}
	pageSize, err := queryInt(r, "pageSize", unpaginated)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid pageSize value")
		return
	}

	var items []T
	if pageSize == unpaginated {
		items, err = h.service.List(r.Context())
	} else {
		items, err = h.service.ListPage(r.Context(), page, pageSize)
	}
	if err != nil {
		if IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Int("page", page).Int("pageSize", pageSize).
			Msgf("Unhandled error occurred listing %s records", h.entity)
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error occurred when retrieving the %s list.", h.lowerEntity()))
		return
	}

	if items == nil {
		items = []T{}
	}
	h.respondJSON(w, http.StatusOK, items)
}

func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	item, found, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Stringer("id", id).Msgf("Unhandled error occurred retrieving %s by id", h.lowerEntity())
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error occurred when retrieving the %s.", h.lowerEntity()))
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("%s not found", h.entity))
		return
	}
	h.respondJSON(w, http.StatusOK, item)
}

func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := NewCreateRequest(body)
	if id := body.EntityID(); id != uuid.Nil {
		req = NewCreateRequestWithID(id, body)
	}

	item, mode, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case IsConflict(err):
			h.logger.Info().Stringer("id", body.EntityID()).Msgf("Conflicting %s found on create request", h.lowerEntity())
			h.respondError(w, http.StatusConflict, err.Error())
		case IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Stringer("id", body.EntityID()).Str("name", body.DisplayName()).
				Msgf("Unhandled error occurred when creating %s", h.lowerEntity())
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error occurred when creating the %s.", h.lowerEntity()))
		}
		return
	}

	h.logger.Info().Stringer("id", item.EntityID()).Str("name", item.DisplayName()).Stringer("mode", mode).
		Msgf("%s created", h.entity)

	if mode == ModeAccepted {
		h.respondJSON(w, http.StatusAccepted, item)
		return
	}
	w.Header().Set("Location", h.location(item.EntityID()))
	h.respondJSON(w, http.StatusCreated, item)
}

// Put updates the entity when its identifier exists and creates it otherwise.
func (h *Handler[T]) Put(w http.ResponseWriter, r *http.Request) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.EntityID() == uuid.Nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s ID is required", h.entity))
		return
	}

	item, created, err := h.service.Upsert(r.Context(), body)
	if err != nil {
		switch {
		case IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case IsConflict(err):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Stringer("id", body.EntityID()).Str("name", body.DisplayName()).
				Msgf("Unhandled error occurred when upserting %s", h.lowerEntity())
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error occurred when attempting to save the %s.", h.lowerEntity()))
		}
		return
	}

	if created {
		h.logger.Info().Stringer("id", item.EntityID()).Str("name", item.DisplayName()).Msgf("%s created", h.entity)
		w.Header().Set("Location", h.location(item.EntityID()))
		h.respondJSON(w, http.StatusCreated, item)
		return
	}
	h.respondJSON(w, http.StatusOK, item)
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		if IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("%s not found", h.entity))
			return
		}
		h.logger.Error().Err(err).Stringer("id", id).Msgf("Unhandled error occurred when deleting %s", h.lowerEntity())
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error occurred when attempting to delete the %s.", h.lowerEntity()))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// requireID parses the {id} path value and rejects malformed identifiers with 400.
func (h *Handler[T]) requireID(next func(w http.ResponseWriter, r *http.Request, id uuid.UUID)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", h.lowerEntity()))
			return
		}
		next(w, r, id)
	})
}

func (h *Handler[T]) location(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s", h.basePath, id)
}

func (h *Handler[T]) lowerEntity() string {
	if h.entity == "" {
		return h.entity
	}
	b := []byte(h.entity)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}
