package models

import "time"

// InventoryTemplate is externally owned; inventory components reference it by id only.
type InventoryTemplate struct {
	TemplateID string    `json:"templateid" bson:"templateid"`
	Name       string    `json:"name" bson:"name"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Deleted    bool      `json:"-" bson:"deleted,omitempty"`
	Rooms      []Room    `json:"rooms" bson:"rooms"`
}

type Room struct {
	Name        string       `json:"name" bson:"name"`
	Subsections []Subsection `json:"subsections" bson:"subsections"`
}

type Subsection struct {
	Name  string          `json:"name" bson:"name"`
	Items []InventoryItem `json:"items" bson:"items"`
}

type InventoryItem struct {
	Name            string `json:"name" bson:"name"`
	DesiredQuantity int    `json:"desired_quantity" bson:"desired_quantity"`
	ActualQuantity  *int   `json:"actual_quantity,omitempty" bson:"actual_quantity,omitempty"`
}
