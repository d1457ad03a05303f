package model

import "time"

// CrewMembership links a brawler to a mission. The composite key allows one row per pair.
type CrewMembership struct {
	MissionID uint `gorm:"primaryKey;autoIncrement:false"`
	BrawlerID uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}
