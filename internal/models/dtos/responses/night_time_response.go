package responses

import "time"

type NightTimeResponse struct {
	Dept         string    `json:"dept"`
	Dest         string    `json:"dest"`
	BlockOff     time.Time `json:"block_off"`
	BlockMinutes int       `json:"block_minutes"`
	NightMinutes int       `json:"night_minutes"`
	NightTime    string    `json:"night_time"` // hh:mm
	TakeOffNight bool      `json:"takeoff_night"`
	LandingNight bool      `json:"landing_night"`
}

type IsNightResponse struct {
	Airport string    `json:"airport"`
	At      time.Time `json:"at"`
	IsNight bool      `json:"is_night"`
}

type DistanceResponse struct {
	Dept       string  `json:"dept"`
	Dest       string  `json:"dest"`
	DistanceNM float64 `json:"distance_nm"`
}

type NightAngleResponse struct {
	NightAngle float64 `json:"night_angle"`
}

// RecomputeResponse reports a batch recompute pass
type RecomputeResponse struct {
	Job        string    `json:"job"`
	Visited    int       `json:"visited"`
	Updated    int       `json:"updated"`
	Failed     int       `json:"failed"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at,omitempty"`
}

type NightAngleUpdateResponse struct {
	NightAngle float64            `json:"night_angle"`
	Recompute  *RecomputeResponse `json:"recompute"`
}

type AirportImportResponse struct {
	Imported int `json:"imported"`
}
