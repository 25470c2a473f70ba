package summary

import (
	"context"
	"net/http"
	"time"

	"tourbase/db"
	"tourbase/models"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/livesessions/:sessionid/summary
func GetSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, forms, templates, err := loadSessionWithRefs(ctx, ps.ByName("sessionid"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sessionid":  session.SessionID,
		"tour_name":  session.TourName,
		"group_name": session.GroupName,
		"active":     session.Active,
		"lines":      Build(session, forms, templates),
	})
}

// loadSessionWithRefs fetches the session plus every distinct form and
// inventory template its snapshot references, one fetch per id. A missing
// definition is simply absent from the map; Build renders it as pending.
func loadSessionWithRefs(ctx context.Context, sessionID string) (*models.LiveSession, map[string]models.FormDefinition, map[string]models.InventoryTemplate, error) {
	var session models.LiveSession
	err := db.LiveSessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Decode(&session)
	if err != nil {
		return nil, nil, nil, err
	}

	formIDs, templateIDs := ReferencedIDs(&session)

	forms := make(map[string]models.FormDefinition, len(formIDs))
	for _, id := range formIDs {
		var form models.FormDefinition
		if err := db.FormsCollection.FindOne(ctx, bson.M{"formid": id}).Decode(&form); err == nil {
			forms[id] = form
		}
	}

	templates := make(map[string]models.InventoryTemplate, len(templateIDs))
	for _, id := range templateIDs {
		var template models.InventoryTemplate
		if err := db.InventoryCollection.FindOne(ctx, bson.M{"templateid": id}).Decode(&template); err == nil {
			templates[id] = template
		}
	}

	return &session, forms, templates, nil
}
