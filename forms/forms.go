package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"tourbase/db"
	"tourbase/globals"
	"tourbase/models"
	"tourbase/mq"
	"tourbase/registry"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Field type tags a form definition may use.
var allowedFieldTypes = map[string]bool{
	registry.TypeTextInput:     true,
	registry.TypeTextarea:      true,
	registry.TypeDropdown:      true,
	registry.TypeRadioGroup:    true,
	registry.TypeCheckboxGroup: true,
}

// POST /api/forms
func CreateForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var form models.FormDefinition
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(form.Name) == "" {
		http.Error(w, "Form name is required", http.StatusBadRequest)
		return
	}
	for i := range form.Fields {
		if !allowedFieldTypes[form.Fields[i].Type] {
			http.Error(w, "Unsupported field type: "+form.Fields[i].Type, http.StatusBadRequest)
			return
		}
		if form.Fields[i].FieldID == "" {
			form.Fields[i].FieldID = utils.GenerateID(14)
		}
		form.Fields[i].Settings = registry.NormalizeComponentProps(form.Fields[i].Type, form.Fields[i].Settings)
	}

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		http.Error(w, "Invalid user", http.StatusUnauthorized)
		return
	}

	form.FormID = utils.GenerateID(14)
	form.CreatedBy = requestingUserID
	form.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.FormsCollection.InsertOne(ctx, form); err != nil {
		http.Error(w, "Error creating form", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "form-created", models.Index{EntityType: "form", EntityId: form.FormID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, form)
}

// GET /api/forms
func GetForms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.FormsCollection.Find(ctx, bson.M{"deleted": bson.M{"$ne": true}})
	if err != nil {
		http.Error(w, "Error fetching forms", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var forms []models.FormDefinition
	for cursor.Next(ctx) {
		var form models.FormDefinition
		if err := cursor.Decode(&form); err == nil {
			sortFields(&form)
			forms = append(forms, form)
		}
	}
	if forms == nil {
		forms = []models.FormDefinition{}
	}

	utils.RespondWithJSON(w, http.StatusOK, forms)
}

// GET /api/forms/:formid
func GetForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var form models.FormDefinition
	err := db.FormsCollection.FindOne(ctx,
		bson.M{"formid": ps.ByName("formid"), "deleted": bson.M{"$ne": true}}).Decode(&form)
	if err != nil {
		http.Error(w, "Form not found", http.StatusNotFound)
		return
	}
	sortFields(&form)

	utils.RespondWithJSON(w, http.StatusOK, form)
}

// PUT /api/forms/:formid
func UpdateForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updated models.FormDefinition
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(updated.Name) == "" {
		http.Error(w, "Form name is required", http.StatusBadRequest)
		return
	}
	for i := range updated.Fields {
		if !allowedFieldTypes[updated.Fields[i].Type] {
			http.Error(w, "Unsupported field type: "+updated.Fields[i].Type, http.StatusBadRequest)
			return
		}
		if updated.Fields[i].FieldID == "" {
			updated.Fields[i].FieldID = utils.GenerateID(14)
		}
	}

	formID := ps.ByName("formid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.FormsCollection.UpdateOne(ctx,
		bson.M{"formid": formID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"name": updated.Name, "fields": updated.Fields}})
	if err != nil {
		http.Error(w, "Error updating form", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Form not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Form updated successfully"})
}

// DELETE /api/forms/:formid
// Soft delete; tours referencing this form keep their weak reference and
// render a placeholder. Never cascades.
func DeleteForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	formID := ps.ByName("formid")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.FormsCollection.UpdateOne(ctx,
		bson.M{"formid": formID},
		bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		http.Error(w, "Error deleting form", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Form not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Form deleted successfully"})
}

// sortFields orders by the explicit order number, not list position.
func sortFields(form *models.FormDefinition) {
	sort.SliceStable(form.Fields, func(i, j int) bool {
		return form.Fields[i].Order < form.Fields[j].Order
	})
}
