package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	FieldID   int64         `json:"field_id"`
	SlotID    int64         `json:"slot_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
