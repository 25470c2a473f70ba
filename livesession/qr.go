package livesession

import (
	"context"
	"net/http"
	"os"
	"time"

	"tourbase/db"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/livesessions/:sessionid/qr
// Returns a QR code PNG pointing at the public visitor link.
func SessionQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("sessionid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := db.LiveSessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Err()
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	link := base + "/livesession/public/" + sessionID

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
