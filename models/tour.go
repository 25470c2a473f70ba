package models

import "time"

// Fase tags are the five fixed lifecycle stages of a visit.
// The set is static per tour; fases are never created or deleted.
const (
	FaseBefore    = "before"
	FaseArrival   = "arrival"
	FaseDuring    = "during"
	FaseDeparture = "departure"
	FaseAfter     = "after"
)

// FaseOrder is the presentation order of the fixed fases.
var FaseOrder = []string{FaseBefore, FaseArrival, FaseDuring, FaseDeparture, FaseAfter}

// DefaultSectionTitle seeds every fase of a fresh tour.
const DefaultSectionTitle = "Nieuwe sectie"

func IsValidFase(fase string) bool {
	for _, f := range FaseOrder {
		if f == fase {
			return true
		}
	}
	return false
}

type Tour struct {
	TourID    string               `json:"tourid" bson:"tourid"`
	Name      string               `json:"name" bson:"name"`
	CreatedBy string               `json:"created_by" bson:"created_by"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	Deleted   bool                 `json:"-" bson:"deleted,omitempty"`
	Fases     map[string][]Section `json:"fases" bson:"fases"`
}

// Section is owned by exactly one fase of exactly one tour.
// Every fase always holds at least one section.
type Section struct {
	SectionID  string      `json:"sectionid" bson:"sectionid"`
	Title      string      `json:"title" bson:"title"`
	Components []Component `json:"components" bson:"components"`
}

type Component struct {
	ComponentID string         `json:"componentid" bson:"componentid"`
	Type        string         `json:"type" bson:"type"`
	Props       map[string]any `json:"props" bson:"props"`
}
