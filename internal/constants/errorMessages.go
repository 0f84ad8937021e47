package constants

const (
	MsgAirportNotFound     = "Airport not found"
	MsgAircraftNotFound    = "Aircraft not found"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgInvalidTime         = "Invalid time input"
	MsgInvalidNightAngle   = "Night angle must be between -90 and 90 degrees"
	MsgRecomputeFailed     = "Recompute failed"
	MsgAirportImportFailed = "Failed to import airports"
	MsgUnauthorized        = "Unauthorized"
)
