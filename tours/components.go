package tours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/tours/:tourid/fases/:fase/sections/:sectionid/components
func AddComponentHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Type  string         `json:"type"`
		Props map[string]any `json:"props"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, ps.ByName("tourid"))
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	component, err := AddComponent(tour, ps.ByName("fase"), ps.ByName("sectionid"), input.Type)
	switch {
	case errors.Is(err, ErrUnknownType):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrInvalidFase):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Error adding component", http.StatusInternalServerError)
		return
	}

	// Creation may carry initial props; they merge over the defaults.
	if len(input.Props) > 0 {
		if _, err := UpdateComponent(tour, ps.ByName("fase"), ps.ByName("sectionid"), component.ComponentID, input.Props); err != nil {
			http.Error(w, "Error applying props", http.StatusInternalServerError)
			return
		}
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving component", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, component)
}

// PUT /api/tours/:tourid/fases/:fase/sections/:sectionid/components/:componentid
func UpdateComponentHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var props map[string]any
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, ps.ByName("tourid"))
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	component, err := UpdateComponent(tour, ps.ByName("fase"), ps.ByName("sectionid"), ps.ByName("componentid"), props)
	switch {
	case errors.Is(err, ErrComponentMissing), errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrInvalidFase):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Error updating component", http.StatusInternalServerError)
		return
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving component", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, component)
}

// DELETE /api/tours/:tourid/fases/:fase/sections/:sectionid/components/:componentid
func DeleteComponentHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, ps.ByName("tourid"))
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	err = DeleteComponent(tour, ps.ByName("fase"), ps.ByName("sectionid"), ps.ByName("componentid"))
	switch {
	case errors.Is(err, ErrComponentMissing), errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrInvalidFase):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Error deleting component", http.StatusInternalServerError)
		return
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving component", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Component deleted successfully"})
}

// PUT /api/tours/:tourid/fases/:fase/sections/:sectionid/order
func ReorderComponentsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Order []string `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, ps.ByName("tourid"))
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	err = ReorderComponents(tour, ps.ByName("fase"), ps.ByName("sectionid"), input.Order)
	switch {
	case errors.Is(err, ErrNotAPermutation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrInvalidFase):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Error reordering components", http.StatusInternalServerError)
		return
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving order", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Order saved"})
}
