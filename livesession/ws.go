package livesession

import (
	"context"
	"log"
	"net/http"
	"time"

	"tourbase/db"
	"tourbase/models"
	"tourbase/tours"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// visitorInbound is one navigation or answer event from the visitor UI.
type visitorInbound struct {
	Action      string `json:"action"` // answer | next | prev | finish
	ComponentID string `json:"componentid,omitempty"`
	Value       any    `json:"value,omitempty"`
}

type visitorOutbound struct {
	OK           bool           `json:"ok"`
	Action       string         `json:"action"`
	Error        string         `json:"error,omitempty"`
	Fase         string         `json:"fase"`
	SectionID    string         `json:"sectionid"`
	SectionTitle string         `json:"section_title"`
	HasPrev      bool           `json:"has_prev"`
	HasNext      bool           `json:"has_next"`
	Responses    map[string]any `json:"responses,omitempty"`
}

// ServeVisitor drives one Runner per connected visitor. No account needed;
// the session id from the public link is the capability.
// GET /ws/livesessions/:sessionid
func ServeVisitor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("sessionid")

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
	tours.NormalizeTour(&models.Tour{Fases: session.Fases})

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("visitor ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	runner := NewRunner(&session, MongoSubmitter{})
	log.Printf("visitor session opened: session=%s group=%s", sessionID, session.GroupName)

	// Opening position.
	if err := conn.WriteJSON(stateOf(runner, "open", nil)); err != nil {
		return
	}

	for {
		var msg visitorInbound
		if err := conn.ReadJSON(&msg); err != nil {
			// Tab closed; whatever was not flushed by navigation is lost,
			// which is the documented trade-off.
			return
		}

		var opErr error
		switch msg.Action {
		case "answer":
			runner.SetResponse(msg.ComponentID, msg.Value)
		case "next":
			opErr = runner.Next(r.Context())
		case "prev":
			opErr = runner.Prev(r.Context())
		case "finish":
			opErr = runner.Finish(r.Context())
		default:
			opErr = errUnknownVisitorAction(msg.Action)
		}

		if err := conn.WriteJSON(stateOf(runner, msg.Action, opErr)); err != nil {
			return
		}
	}
}

func stateOf(runner *Runner, action string, opErr error) visitorOutbound {
	step := runner.Current()
	out := visitorOutbound{
		OK:           opErr == nil,
		Action:       action,
		Fase:         step.Fase,
		SectionID:    step.Section.SectionID,
		SectionTitle: step.Section.Title,
		HasPrev:      runner.HasPrev(),
		HasNext:      runner.HasNext(),
		Responses:    runner.Responses(),
	}
	if opErr != nil {
		out.Error = opErr.Error()
	}
	return out
}

type errUnknownVisitorAction string

func (e errUnknownVisitorAction) Error() string { return "unknown action: " + string(e) }
