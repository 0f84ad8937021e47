package gorm

import "time"

// Setting is a single key/value application setting
type Setting struct {
	Key       string    `gorm:"column:key;primaryKey;type:varchar(100)" db:"key"`
	Value     string    `gorm:"column:value;type:text;not null" db:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

// TableName specifies the table name for GORM
func (Setting) TableName() string {
	return "settings"
}
