package timeslot

type CreateSlotsReq struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartHour *int   `json:"start_hour" validate:"required,gte=0,lte=23"`
	EndHour   *int   `json:"end_hour" validate:"required,gte=1,lte=24"`
}
