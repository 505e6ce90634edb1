package model

import "time"

// DocumentUpload is the inbound payload for a reservation document.
type DocumentUpload struct {
	FileName string `json:"file_name" validate:"required,min=1,max=255"`
	Content  []byte `json:"content" validate:"required"`
}

// Document is a stored reservation document. The engine treats the id as
// an opaque handle; only the reference travels on the reservation record.
type Document struct {
	ID            string    `json:"file_id" bson:"_id"`
	FileName      string    `json:"file_name" bson:"file_name"`
	FileSize      int64     `json:"file_size" bson:"file_size"`
	UserID        string    `json:"user_id" bson:"user_id"`
	ReservationID string    `json:"reservation_id" bson:"reservation_id"`
	Content       []byte    `json:"-" bson:"content"`
	UploadedAt    time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
