package inventory

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
)

// POST /api/inventory
func CreateTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var template models.InventoryTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(template.Name) == "" {
		http.Error(w, "Template name is required", http.StatusBadRequest)
		return
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		http.Error(w, "Invalid user", http.StatusUnauthorized)
		return
	}

	template.TemplateID = utils.GenerateID(14)
	template.CreatedBy = requestingUserID
	template.CreatedAt = time.Now().UTC()
	if template.Rooms == nil {
		template.Rooms = []models.Room{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.InventoryCollection.InsertOne(ctx, template); err != nil {
		http.Error(w, "Error creating template", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "inventory-created", models.Index{EntityType: "inventory", EntityId: template.TemplateID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, template)
}

// GET /api/inventory
func GetTemplates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.InventoryCollection.Find(ctx, bson.M{"deleted": bson.M{"$ne": true}})
	if err != nil {
		http.Error(w, "Error fetching templates", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var templates []models.InventoryTemplate
	for cursor.Next(ctx) {
		var template models.InventoryTemplate
		if err := cursor.Decode(&template); err == nil {
			templates = append(templates, template)
		}
	}
	if templates == nil {
		templates = []models.InventoryTemplate{}
	}

	utils.RespondWithJSON(w, http.StatusOK, templates)
}

// GET /api/inventory/:templateid
func GetTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var template models.InventoryTemplate
	err := db.InventoryCollection.FindOne(ctx,
		bson.M{"templateid": ps.ByName("templateid"), "deleted": bson.M{"$ne": true}}).Decode(&template)
	if err != nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, template)
}

// PUT /api/inventory/:templateid
func UpdateTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updated models.InventoryTemplate
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(updated.Name) == "" {
		http.Error(w, "Template name is required", http.StatusBadRequest)
		return
	}

	templateID := ps.ByName("templateid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.InventoryCollection.UpdateOne(ctx,
		bson.M{"templateid": templateID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"name": updated.Name, "rooms": updated.Rooms}})
	if err != nil {
		http.Error(w, "Error updating template", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Template updated successfully"})
}

// DELETE /api/inventory/:templateid
// Soft delete, never cascades into tours that reference the template.
func DeleteTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	templateID := ps.ByName("templateid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.InventoryCollection.UpdateOne(ctx,
		bson.M{"templateid": templateID},
		bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		http.Error(w, "Error deleting template", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Template deleted successfully"})
}
