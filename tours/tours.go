package tours

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tourbase/db"
	"tourbase/globals"
	"tourbase/models"
	"tourbase/mq"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/tours
func CreateTour(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		http.Error(w, "Tour name is required", http.StatusBadRequest)
		return
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		http.Error(w, "Invalid user", http.StatusUnauthorized)
		return
	}

	tour := NewTour(input.Name, requestingUserID)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ToursCollection.InsertOne(ctx, tour); err != nil {
		http.Error(w, "Error creating tour", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "tour-created", models.Index{EntityType: "tour", EntityId: tour.TourID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, tour)
}

// GET /api/tours
func GetTours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	opts := options.Find().SetProjection(bson.M{"tourid": 1, "name": 1, "created_at": 1})

	cursor, err := db.ToursCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, "Error fetching tours", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var tours []models.Tour
	for cursor.Next(ctx) {
		var tour models.Tour
		if err := cursor.Decode(&tour); err == nil {
			tours = append(tours, tour)
		}
	}
	if tours == nil {
		tours = []models.Tour{}
	}

	utils.RespondWithJSON(w, http.StatusOK, tours)
}

// GET /api/tours/:tourid
func GetTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := loadTour(ctx, ps.ByName("tourid"))
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tour)
}

// PUT /api/tours/:tourid
func RenameTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		http.Error(w, "Tour name is required", http.StatusBadRequest)
		return
	}

	tourID := ps.ByName("tourid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ToursCollection.UpdateOne(ctx,
		bson.M{"tourid": tourID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"name": input.Name}})
	if err != nil {
		http.Error(w, "Error renaming tour", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	mq.Emit(ctx, "tour-renamed", models.Index{EntityType: "tour", EntityId: tourID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Tour renamed successfully"})
}

// DELETE /api/tours/:tourid
func DeleteTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tourID := ps.ByName("tourid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ToursCollection.UpdateOne(ctx,
		bson.M{"tourid": tourID},
		bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		http.Error(w, "Error deleting tour", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}

	mq.Emit(ctx, "tour-deleted", models.Index{EntityType: "tour", EntityId: tourID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Tour deleted successfully"})
}

// loadTour fetches a live tour and canonicalizes every component props bag.
// This is the single boundary where tour documents leave MongoDB.
func loadTour(ctx context.Context, tourID string) (*models.Tour, error) {
	var tour models.Tour
	err := db.ToursCollection.FindOne(ctx,
		bson.M{"tourid": tourID, "deleted": bson.M{"$ne": true}}).Decode(&tour)
	if err != nil {
		return nil, err
	}
	NormalizeTour(&tour)
	return &tour, nil
}

// saveFases writes back the full fases tree of one tour.
func saveFases(ctx context.Context, tour *models.Tour) error {
	_, err := db.ToursCollection.UpdateOne(ctx,
		bson.M{"tourid": tour.TourID},
		bson.M{"$set": bson.M{"fases": tour.Fases}})
	return err
}
