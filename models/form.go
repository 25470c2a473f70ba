package models

import "time"

// FormDefinition is externally owned; form components reference it by id only.
type FormDefinition struct {
	FormID    string      `json:"formid" bson:"formid"`
	Name      string      `json:"name" bson:"name"`
	CreatedBy string      `json:"created_by" bson:"created_by"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	Deleted   bool        `json:"-" bson:"deleted,omitempty"`
	Fields    []FormField `json:"fields" bson:"fields"`
}

// FormField renders in Order, not list position.
type FormField struct {
	FieldID  string         `json:"fieldid" bson:"fieldid"`
	Type     string         `json:"type" bson:"type"`
	Label    string         `json:"label" bson:"label"`
	Settings map[string]any `json:"settings" bson:"settings"`
	Order    int            `json:"order" bson:"order"`
}
