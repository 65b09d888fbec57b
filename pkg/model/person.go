package model

import "time"

// Person is a uniquely named personnel record.
type Person struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Person) TableName() string {
	return "people"
}

// PersonAstronaut is a person joined with its astronaut snapshot. The
// snapshot columns are nil for people that never had a duty assigned.
type PersonAstronaut struct {
	PersonID         int64      `gorm:"column:person_id"`
	Name             string     `gorm:"column:name"`
	CurrentRank      *string    `gorm:"column:current_rank"`
	CurrentDutyTitle *string    `gorm:"column:current_duty_title"`
	CareerStartDate  *time.Time `gorm:"column:career_start_date"`
	CareerEndDate    *time.Time `gorm:"column:career_end_date"`
}

// IsAstronaut reports whether the person has an astronaut snapshot.
func (p PersonAstronaut) IsAstronaut() bool {
	return p.CareerStartDate != nil
}
