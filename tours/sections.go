package tours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tourbase/models"
	"tourbase/mq"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/tours/:tourid/fases/:fase/sections
func AddSectionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tourID := ps.ByName("tourid")
	fase := ps.ByName("fase")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, tourID)
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	section, err := AddSection(tour, fase)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving section", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "section-added", models.Index{EntityType: "tour", EntityId: tourID, ItemType: "section", ItemId: section.SectionID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, section)
}

// PUT /api/tours/:tourid/fases/:fase/sections/:sectionid
func RenameSectionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	tourID := ps.ByName("tourid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, tourID)
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	err = RenameSection(tour, ps.ByName("fase"), ps.ByName("sectionid"), input.Title)
	switch {
	case errors.Is(err, ErrEmptyTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrInvalidFase):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Error renaming section", http.StatusInternalServerError)
		return
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving section", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Section renamed successfully"})
}

// DELETE /api/tours/:tourid/fases/:fase/sections/:sectionid
func DeleteSectionHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tourID := ps.ByName("tourid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, tourID)
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	err = DeleteSection(tour, ps.ByName("fase"), ps.ByName("sectionid"))
	switch {
	case errors.Is(err, ErrLastSection):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrInvalidFase):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Error deleting section", http.StatusInternalServerError)
		return
	}

	if err := saveFases(ctx, tour); err != nil {
		http.Error(w, "Error saving section", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "section-deleted", models.Index{EntityType: "tour", EntityId: tourID, ItemType: "section", ItemId: ps.ByName("sectionid"), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Section deleted successfully"})
}
