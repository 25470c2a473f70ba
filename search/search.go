package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"tourbase/db"
	"tourbase/models"
	"tourbase/mq"
	"tourbase/rdx"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const tourIndexKey = "search:tours"

// StartIndexingWorker consumes indexing events and keeps the redis name
// index in step with MongoDB.
func StartIndexingWorker() {
	ctx := context.Background()
	log.Println("[IndexingWorker] Listening for indexing events...")

	for payload := range mq.Subscribe(ctx) {
		var event models.Index
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}
		if err := indexEntity(ctx, event); err != nil {
			log.Printf("[IndexingWorker] Index error for %s %s: %v", event.EntityType, event.EntityId, err)
		}
	}
}

func indexEntity(ctx context.Context, event models.Index) error {
	if event.EntityType != "tour" {
		return nil
	}

	if event.Method == "DELETE" {
		_, err := rdx.RdxHdel(tourIndexKey, event.EntityId)
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tour models.Tour
	err := db.ToursCollection.FindOne(cctx, bson.M{"tourid": event.EntityId}).Decode(&tour)
	if err != nil {
		return err
	}
	return rdx.RdxHset(tourIndexKey, tour.TourID, tour.Name)
}

// GET /api/search/tours?q=
func SearchTours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	indexed, err := rdx.RdxHgetall(tourIndexKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search unavailable")
		return
	}

	type hit struct {
		TourID string `json:"tourid"`
		Name   string `json:"name"`
	}
	hits := []hit{}
	for id, name := range indexed {
		if query == "" || strings.Contains(strings.ToLower(name), query) {
			hits = append(hits, hit{TourID: id, Name: name})
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, hits)
}
