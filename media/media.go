package media

import (
	"context"
	"net/http"
	"time"

	"tourbase/db"
	"tourbase/filemgr"
	"tourbase/globals"
	"tourbase/models"
	"tourbase/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/media/upload
// Multipart body with a "file" part plus optional "alt" and "styles" values.
// Uploads are eager: a file is either stored now or the visitor retries the
// whole upload; there is nothing to batch.
func Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	header := files[0]

	src, err := header.Open()
	if err != nil {
		http.Error(w, "Cannot open uploaded file", http.StatusBadRequest)
		return
	}

	kind := filemgr.KindForFilename(header.Filename)
	filename, contentType, err := filemgr.SaveUpload(src, header, kind)
	if err != nil {
		http.Error(w, "Upload failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	alt := r.FormValue("alt")
	if alt == "" {
		// Fall back to the original filename so screen readers get something.
		alt = utils.SanitizeFilename(header.Filename)
	}

	doc := models.Media{
		MediaID:     utils.GenerateID(14),
		Filename:    filename,
		ContentType: contentType,
		URL:         "/static/uploads/" + kindFolder(kind) + "/" + filename,
		Alt:         alt,
		Styles:      r.FormValue("styles"),
		UploadedAt:  time.Now().UTC(),
	}
	if userID, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		doc.UploadedBy = userID
	}

	if kind == filemgr.KindPhoto {
		if thumb, err := filemgr.CreateThumbnail(filename); err == nil {
			doc.ThumbURL = "/static/uploads/thumb/" + thumb
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.MediaCollection.InsertOne(ctx, doc); err != nil {
		http.Error(w, "Error recording upload", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

// GET /api/media/:mediaid
func GetMedia(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var doc models.Media
	err := db.MediaCollection.FindOne(ctx, bson.M{"mediaid": ps.ByName("mediaid")}).Decode(&doc)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Media not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, doc)
}

func kindFolder(kind filemgr.FileKind) string {
	switch kind {
	case filemgr.KindPhoto:
		return "photo"
	case filemgr.KindVideo:
		return "videos"
	default:
		return "files"
	}
}
