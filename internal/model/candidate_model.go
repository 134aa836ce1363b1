package model

import "time"

type Candidate struct {
	Id            uint      `gorm:"primaryKey"`
	Position      string    `gorm:"type:text;not null;index"`
	CandidateName string    `gorm:"column:candidate_name;type:text;not null"`
	Party         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Candidate) TableName() string {
	return "candidates"
}
