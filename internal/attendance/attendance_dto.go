package attendance

// Coordinates are pointers so a missing field fails binding instead of
// silently becoming 0,0.
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type CheckInResponse struct {
	Message     string `json:"message"`
	CheckInTime string `json:"check_in_time"`
	Status      string `json:"status"`
}

type CheckOutResponse struct {
	Message      string `json:"message"`
	CheckOutTime string `json:"check_out_time"`
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	CheckIn      *string  `json:"check_in"`
	CheckOut     *string  `json:"check_out"`
	Remarks      *string  `json:"remarks"`
	WorkingHours *float64 `json:"working_hours"`
}
