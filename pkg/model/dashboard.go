package model

// ShiftAvailability reports which shifts are still free on a space for a
// given date.
type ShiftAvailability struct {
	Morning   bool `json:"morning"`
	Afternoon bool `json:"afternoon"`
	FullDay   bool `json:"full_day"`
}

// DashboardEntry merges one space with its active reservations covering
// the requested date. Entries are ordered by space number.
type DashboardEntry struct {
	Space        ParkingSpace      `json:"space"`
	Reservations []*Reservation    `json:"reservations"`
	IsAvailable  ShiftAvailability `json:"is_available"`
}
