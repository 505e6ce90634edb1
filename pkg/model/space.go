package model

import (
	"fmt"
	"time"
)

// ParkingSpace is one physical space in the fixed inventory. Spaces are
// created once at bootstrap with stable string ids and are never deleted,
// only deactivated.
type ParkingSpace struct {
	ID        string    `json:"id" bson:"_id"`
	Number    int       `json:"number" bson:"number"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// SpaceID returns the stable identifier for a space number, e.g. "space-07".
func SpaceID(number int) string {
	return fmt.Sprintf("space-%02d", number)
}
