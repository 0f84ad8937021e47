package gorm

// Aircraft is a registered airframe (tail) flights are logged on.
// MultiPilot and MultiEngine drive the automatic time category of its flights.
type Aircraft struct {
	ID           uint   `gorm:"column:tail_id;primaryKey;autoIncrement"`
	Registration string `gorm:"column:registration;type:text;not null"`
	Company      string `gorm:"column:company;type:text"`
	Make         string `gorm:"column:make;type:text"`
	Model        string `gorm:"column:model;type:text"`
	Variant      string `gorm:"column:variant;type:text"`
	MultiPilot   bool   `gorm:"column:multipilot;not null;default:false"`
	MultiEngine  bool   `gorm:"column:multiengine;not null;default:false"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "tails"
}
