package constants

const (
	GetSettingByKey = `
	SELECT value FROM settings WHERE key = ?
	`

	UpsertSetting = `
	INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	PingQuery = `SELECT 1`
)
