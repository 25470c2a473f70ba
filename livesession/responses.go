package livesession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tourbase/db"
	"tourbase/models"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionEnded        = errors.New("session is no longer active")
	ErrSectionNotInSession = errors.New("section is not part of this session")
)

// saveSectionResponses stores one section's whole response map in a single
// write and invalidates the public cache. Shared by the REST endpoint and the
// visitor websocket channel.
func saveSectionResponses(ctx context.Context, sessionID, sectionID string, responses map[string]any) error {
	var session models.LiveSession
	err := db.LiveSessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Decode(&session)
	if err != nil {
		return ErrSessionNotFound
	}
	if !session.Active {
		return ErrSessionEnded
	}
	if !sectionInSnapshot(&session, sectionID) {
		return ErrSectionNotInSession
	}

	field := fmt.Sprintf("responses.%s", sectionID)
	_, err = db.LiveSessionsCollection.UpdateOne(ctx,
		bson.M{"sessionid": sessionID},
		bson.M{"$set": bson.M{field: responses}})
	if err != nil {
		return fmt.Errorf("save responses for section %s: %w", sectionID, err)
	}

	invalidatePublicCache(sessionID)
	return nil
}

// POST /api/livesessions/:sessionid/responses/:sectionid
// Bulk submit: the visitor's whole response map for one section lands in a
// single write. Called by the runner when the visitor navigates away from
// the section.
func SubmitSectionResponses(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var responses map[string]any
	if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := saveSectionResponses(ctx, ps.ByName("sessionid"), ps.ByName("sectionid"), responses)
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSectionNotInSession):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionEnded):
		http.Error(w, err.Error(), http.StatusGone)
		return
	case err != nil:
		http.Error(w, "Error saving responses", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Responses saved"})
}

func sectionInSnapshot(session *models.LiveSession, sectionID string) bool {
	for _, sections := range session.Fases {
		for _, section := range sections {
			if section.SectionID == sectionID {
				return true
			}
		}
	}
	return false
}

// MongoSubmitter persists runner flushes through the same path as the REST
// bulk-submit endpoint.
type MongoSubmitter struct{}

func (MongoSubmitter) SubmitSection(ctx context.Context, sessionID, sectionID string, responses map[string]any) error {
	return saveSectionResponses(ctx, sessionID, sectionID, responses)
}
