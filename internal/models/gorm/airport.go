package gorm

import (
	"database/sql"
	"time"
)

// Airport represents an airport record with geographic coordinates
type Airport struct {
	ID        uint          `gorm:"column:airport_id;primaryKey;autoIncrement"`
	ICAO      string        `gorm:"column:icao;type:varchar(4);not null;uniqueIndex"`
	IATA      string        `gorm:"column:iata;type:varchar(3);index"`
	Name      string        `gorm:"column:name;type:text;not null"`
	City      string        `gorm:"column:city;type:varchar(100)"`
	Country   string        `gorm:"column:country;type:varchar(100)"`
	Elevation sql.NullInt64 `gorm:"column:alt;type:integer"`
	Latitude  float64       `gorm:"column:lat;not null"`
	Longitude float64       `gorm:"column:long;not null"`
	Timezone  string        `gorm:"column:tzolson;type:varchar(50)"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
