package model

import "time"

// CheckInTimeLayout is the format of TrackingEntry.CheckIn.
const CheckInTimeLayout = "2006-01-02 15:04:05"

// TrackingEntry records a visitor's presence.
// CheckOutID and CheckOut stay empty until a check-out exists.
type TrackingEntry struct {
	ID         string `json:"id"`
	CheckOutID string `json:"checkOutId"`
	Name       string `json:"name"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
}

// CheckInRequest is the body accepted by POST /tracking.
type CheckInRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewCheckIn builds a fresh tracking entry stamped with the local time t.
func NewCheckIn(id, name string, t time.Time) *TrackingEntry {
	return &TrackingEntry{
		ID:         id,
		CheckOutID: "",
		Name:       name,
		CheckIn:    t.Local().Format(CheckInTimeLayout),
		CheckOut:   "",
	}
}
