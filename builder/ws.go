package builder

import (
	"log"
	"net/http"

	"tourbase/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inbound is one editing event from the builder UI.
type inbound struct {
	Action       string         `json:"action"` // select | edit | focus | deselect | flush
	Fase         string         `json:"fase,omitempty"`
	SectionIndex int            `json:"sectionIndex,omitempty"`
	ComponentID  string         `json:"componentid,omitempty"`
	Type         string         `json:"type,omitempty"`
	Props        map[string]any `json:"props,omitempty"`
}

type outbound struct {
	OK     bool   `json:"ok"`
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
	Dirty  bool   `json:"dirty"`
}

// ServeEditor drives one Controller per connected editor.
// GET /ws/builder/:tourid?token=<jwt>
func ServeEditor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateRawToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("builder ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	tourID := ps.ByName("tourid")
	ctrl := NewController(tourID, MongoFlusher{})
	log.Printf("builder session opened: tour=%s user=%s", tourID, claims.UserID)

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			// Connection gone; push out whatever is still unsaved.
			if flushErr := ctrl.Flush(r.Context()); flushErr != nil {
				log.Printf("builder session close flush failed: %v", flushErr)
			}
			return
		}

		var opErr error
		switch msg.Action {
		case "select":
			opErr = ctrl.Select(r.Context(), Selection{
				Fase:         msg.Fase,
				SectionIndex: msg.SectionIndex,
				ComponentID:  msg.ComponentID,
				Type:         msg.Type,
			}, msg.Props)
		case "edit":
			opErr = ctrl.Edit(msg.Props)
		case "focus":
			opErr = ctrl.Focus(r.Context(), msg.Fase, msg.SectionIndex)
		case "deselect":
			opErr = ctrl.Deselect(r.Context())
		case "flush":
			opErr = ctrl.Flush(r.Context())
		default:
			opErr = errUnknownAction(msg.Action)
		}

		reply := outbound{OK: opErr == nil, Action: msg.Action, Dirty: ctrl.Dirty()}
		if opErr != nil {
			reply.Error = opErr.Error()
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

type errUnknownAction string

func (e errUnknownAction) Error() string { return "unknown action: " + string(e) }
