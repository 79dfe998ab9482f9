package booking

type CreateBookingReq struct {
	FieldID int64 `json:"field_id" validate:"required,gt=0"`
	SlotID  int64 `json:"slot_id" validate:"required,gt=0"`
}
