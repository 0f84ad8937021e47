package constants

type (
	APIStatus   string
	CachePrefix string
	JobName     string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirportCoordinates CachePrefix = "APT_COORD_"

	JobRecomputeNightTimes     JobName = "recompute_night_times"
	JobRecomputeTimeCategories JobName = "recompute_time_categories"
)

const (
	// SettingNightAngle holds the solar elevation (degrees) below which night conditions exist
	SettingNightAngle = "flightlogging/nightangle"
)
