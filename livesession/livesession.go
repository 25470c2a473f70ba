package livesession

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tourbase/db"
	"tourbase/globals"
	"tourbase/models"
	"tourbase/tours"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/livesessions
func StartSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		TourID     string   `json:"tourid"`
		SectionIDs []string `json:"sectionIds"`
		GroupName  string   `json:"group_name"`
		Contact    string   `json:"contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.TourID == "" || len(input.SectionIDs) == 0 {
		http.Error(w, "tourid and sectionIds are required", http.StatusBadRequest)
		return
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		http.Error(w, "Invalid user", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tour models.Tour
	err := db.ToursCollection.FindOne(ctx,
		bson.M{"tourid": input.TourID, "deleted": bson.M{"$ne": true}}).Decode(&tour)
	if err != nil {
		http.Error(w, "Tour not found", http.StatusNotFound)
		return
	}
	tours.NormalizeTour(&tour)

	session := newSession(&tour, input.SectionIDs, input.GroupName, input.Contact, requestingUserID)
	if len(session.Fases) == 0 {
		http.Error(w, "None of the requested sections exist in this tour", http.StatusBadRequest)
		return
	}

	if _, err := db.LiveSessionsCollection.InsertOne(ctx, session); err != nil {
		http.Error(w, "Error starting session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, session)
}

// PATCH /api/livesessions/:sessionid/end
func EndSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("sessionid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := db.LiveSessionsCollection.UpdateOne(ctx,
		bson.M{"sessionid": sessionID},
		bson.M{"$set": bson.M{"active": false, "ended_at": now}})
	if err != nil {
		http.Error(w, "Error ending session", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	invalidatePublicCache(sessionID)

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Session ended"})
}

// GET /api/livesessions/:sessionid
func GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var session models.LiveSession
	err := db.LiveSessionsCollection.FindOne(ctx,
		bson.M{"sessionid": ps.ByName("sessionid")}).Decode(&session)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, session)
}

// GET /api/livesessions
func GetActiveSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listSessions(w, r, bson.M{"active": true})
}

// GET /api/admin/livesessions
// Full history including ended sessions; admin only.
func GetAllSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listSessions(w, r, bson.M{})
}

func listSessions(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.LiveSessionsCollection.Find(ctx, filter)
	if err != nil {
		http.Error(w, "Error fetching sessions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var sessions []models.LiveSession
	for cursor.Next(ctx) {
		var s models.LiveSession
		if err := cursor.Decode(&s); err == nil {
			sessions = append(sessions, s)
		}
	}
	if sessions == nil {
		sessions = []models.LiveSession{}
	}

	utils.RespondWithJSON(w, http.StatusOK, sessions)
}
