package model

import "time"

// AstronautDuty is one entry of a person's duty history. The duty with a
// nil DutyEndDate is the person's current duty.
type AstronautDuty struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	PersonID      int64      `gorm:"column:person_id"`
	Rank          string     `gorm:"column:rank"`
	DutyTitle     string     `gorm:"column:duty_title"`
	DutyStartDate time.Time  `gorm:"column:duty_start_date;type:date"`
	DutyEndDate   *time.Time `gorm:"column:duty_end_date;type:date"`
}

func (AstronautDuty) TableName() string {
	return "astronaut_duties"
}

// IsCurrent returns true if the duty has not been closed
func (d AstronautDuty) IsCurrent() bool {
	return d.DutyEndDate == nil
}
