package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventscheduler/internal/store"
)

type UserHandler struct {
	store *store.PostgresStore
}

func NewUserHandler(s *store.PostgresStore) *UserHandler {
	return &UserHandler{store: s}
}

type userRequest struct {
	Name string `json:"name"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Name)
	if err != nil {
		respondDomainError(w, err, "failed to create user")
		return
	}

	respondData(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondList(w, http.StatusOK, len(users), users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.UpdateUser(r.Context(), id, req.Name)
	if err != nil {
		respondDomainError(w, err, "failed to update user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.store.DeleteUser(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondMessage(w, http.StatusOK, "User deleted successfully")
}
