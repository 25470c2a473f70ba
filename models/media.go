package models

import "time"

// Media records one uploaded file.
type Media struct {
	MediaID     string    `json:"id" bson:"mediaid"`
	Filename    string    `json:"filename" bson:"filename"`
	ContentType string    `json:"contentType" bson:"content_type"`
	URL         string    `json:"url" bson:"url"`
	ThumbURL    string    `json:"thumb_url,omitempty" bson:"thumb_url,omitempty"`
	Alt         string    `json:"alt" bson:"alt"`
	Styles      string    `json:"styles" bson:"styles"`
	UploadedBy  string    `json:"uploaded_by" bson:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
