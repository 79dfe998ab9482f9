package model

import "time"

type TimeSlot struct {
	ID        int64     `json:"id"`
	FieldID   int64     `json:"field_id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
