package model

import "time"

// ReservationLock is an advisory lock serializing reservation admission
// per space. The unique _id makes concurrent acquisition fail with a
// duplicate key error; expires_at lets a TTL index reap stale locks from
// crashed holders.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
