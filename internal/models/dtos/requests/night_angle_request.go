package requests

// NightAngleRequest updates the solar elevation below which flight time counts as night
type NightAngleRequest struct {
	NightAngle *float64 `json:"night_angle"`
}
