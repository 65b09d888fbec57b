package model

import "time"

// AstronautDetail holds the current status of a person. It is created
// lazily, on the first duty assignment or on an update that sets one of
// its fields.
type AstronautDetail struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	PersonID         int64      `gorm:"column:person_id"`
	CurrentRank      string     `gorm:"column:current_rank"`
	CurrentDutyTitle string     `gorm:"column:current_duty_title"`
	CareerStartDate  time.Time  `gorm:"column:career_start_date;type:date"`
	CareerEndDate    *time.Time `gorm:"column:career_end_date;type:date"`
}

func (AstronautDetail) TableName() string {
	return "astronaut_details"
}
