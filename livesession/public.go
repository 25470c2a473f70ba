package livesession

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tourbase/db"
	"tourbase/models"
	"tourbase/rdx"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const publicCacheTTL = 5 * time.Minute

func publicCacheKey(sessionID string) string {
	return "livesession:" + sessionID
}

func invalidatePublicCache(sessionID string) {
	if _, err := rdx.RdxDel(publicCacheKey(sessionID)); err != nil {
		log.Printf("Cache deletion failed for session %s: %v", sessionID, err)
	}
}

// GET /api/livesessions/:sessionid/public
// No auth: this is the link visitors open. Read-mostly, so it is served from
// the redis cache and refilled on miss.
func GetPublicSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("sessionid")

	if cached, err := rdx.RdxGet(publicCacheKey(sessionID)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var session models.LiveSession
	err := db.LiveSessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Decode(&session)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if !session.Active {
		http.Error(w, "Session is no longer active", http.StatusGone)
		return
	}

	// Visitors never see previously collected responses.
	session.Responses = nil

	data, err := json.Marshal(session)
	if err != nil {
		http.Error(w, "Error encoding session", http.StatusInternalServerError)
		return
	}
	if err := rdx.RdxSetWithExpiry(publicCacheKey(sessionID), string(data), publicCacheTTL); err != nil {
		log.Printf("Cache fill failed for session %s: %v", sessionID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
