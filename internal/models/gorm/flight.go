package gorm

import (
	"database/sql"
	"time"

	"openpilotlog/nightlog/internal/calc"
)

// Flight is a logbook entry. Times of day are stored as minutes after
// midnight UTC and durations as minutes.
type Flight struct {
	ID         uint   `gorm:"column:flight_id;primaryKey;autoIncrement"`
	DOFT       string `gorm:"column:doft;type:varchar(10);not null;index"` // date of flight, YYYY-MM-DD
	Dept       string `gorm:"column:dept;type:varchar(4);not null"`
	Dest       string `gorm:"column:dest;type:varchar(4);not null"`
	TOFB       int    `gorm:"column:tofb;not null"`
	TONB       int    `gorm:"column:tonb;not null"`
	TBLK       int    `gorm:"column:tblk;not null"`
	AircraftID uint   `gorm:"column:acft;not null;index"`

	TNight int           `gorm:"column:tNIGHT;not null;default:0"`
	TSPSE  sql.NullInt64 `gorm:"column:tSPSE"`
	TSPME  sql.NullInt64 `gorm:"column:tSPME"`
	TMP    sql.NullInt64 `gorm:"column:tMP"`

	ToDay    int `gorm:"column:toDay;not null;default:0"`
	ToNight  int `gorm:"column:toNight;not null;default:0"`
	LdgDay   int `gorm:"column:ldgDay;not null;default:0"`
	LdgNight int `gorm:"column:ldgNight;not null;default:0"`

	FlightNumber string    `gorm:"column:flightNumber;type:text"`
	Remarks      string    `gorm:"column:remarks;type:text"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

// BlockOffUTC returns the off-blocks instant of the flight.
func (f *Flight) BlockOffUTC() (time.Time, error) {
	return calc.BlockOffUTC(f.DOFT, f.TOFB)
}

// Takeoffs is the total number of takeoffs regardless of day or night.
func (f *Flight) Takeoffs() int {
	return f.ToDay + f.ToNight
}

// Landings is the total number of landings regardless of day or night.
func (f *Flight) Landings() int {
	return f.LdgDay + f.LdgNight
}
