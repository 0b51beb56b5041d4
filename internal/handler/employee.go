package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperr "github.com/shiftboard/engine/pkg/errors"
	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/store"
)

// EmployeeHandler exposes the roster over HTTP.
type EmployeeHandler struct {
	employees store.EmployeeStore
}

// NewEmployeeHandler builds an EmployeeHandler.
func NewEmployeeHandler(employees store.EmployeeStore) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Routes mounts the handler's endpoints under r.
func (h *EmployeeHandler) Routes(r chi.Router) {
	r.Get("/employees", h.List)
	r.Put("/employees", h.Save)
}

// List returns the full roster.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		respondError(w, apperr.StorageFailure("employee", err))
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

// Save upserts the posted roster batch.
func (h *EmployeeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var employees []model.Employee
	if err := json.NewDecoder(r.Body).Decode(&employees); err != nil {
		respondError(w, apperr.Wrap(err, apperr.CodeInvalidInput, "decoding request body"))
		return
	}
	if err := h.employees.Save(r.Context(), employees); err != nil {
		respondError(w, apperr.StorageFailure("employee", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"saved": len(employees)})
}
