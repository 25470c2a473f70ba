package models

import "time"

// LiveSession is a frozen snapshot of selected tour sections. After creation
// only Responses, Active and EndedAt ever change.
type LiveSession struct {
	SessionID string               `json:"sessionid" bson:"sessionid"`
	TourID    string               `json:"tourid" bson:"tourid"`
	TourName  string               `json:"tour_name" bson:"tour_name"`
	GroupName string               `json:"group_name" bson:"group_name"`
	Contact   string               `json:"contact" bson:"contact"`
	Active    bool                 `json:"active" bson:"active"`
	CreatedBy string               `json:"created_by" bson:"created_by"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	EndedAt   *time.Time           `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
	Fases     map[string][]Section `json:"fases" bson:"fases"`
	// Responses is keyed by section id, then component id. Values are a
	// primitive, an array, or {url, filename} for uploads.
	Responses map[string]map[string]any `json:"responses" bson:"responses"`
}
