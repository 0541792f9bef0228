package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Moderation statuses of a submission.
const (
	StatusNew      = "new"
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// StatusDisplay maps a status value to its human-readable label.
var StatusDisplay = map[string]string{
	StatusNew:      "New",
	StatusPending:  "Pending moderation",
	StatusAccepted: "Accepted",
	StatusRejected: "Rejected",
}

// Grades allowed for a seasonal difficulty. Empty string means "not rated".
var Grades = []string{"", "1A", "1B", "2A", "2B", "3A", "3B"}

// ValidGrade reports whether s is an allowed difficulty grade.
func ValidGrade(s string) bool {
	for _, g := range Grades {
		if s == g {
			return true
		}
	}
	return false
}

// Reporter is the person who submitted a pass. Identified by email and
// shared across all of their submissions.
type Reporter struct {
	ID    uint   `gorm:"primaryKey" json:"-"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Fam   string `gorm:"size:255;not null" json:"fam"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Otc   string `gorm:"size:255" json:"otc"`
	Phone string `gorm:"size:20" json:"phone"`
}

// Coords is owned by exactly one Pereval; never shared or deduplicated.
type Coords struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Height    int     `gorm:"not null" json:"height"`
}

// BeforeSave keeps out-of-range coordinates from ever reaching a row.
func (c *Coords) BeforeSave(tx *gorm.DB) error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Level holds the per-season difficulty grades of one Pereval.
type Level struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	Winter string `gorm:"size:2" json:"winter"`
	Summer string `gorm:"size:2" json:"summer"`
	Autumn string `gorm:"size:2" json:"autumn"`
	Spring string `gorm:"size:2" json:"spring"`
}

func (l *Level) BeforeSave(tx *gorm.DB) error {
	for _, s := range []struct {
		season, grade string
	}{
		{"winter", l.Winter},
		{"summer", l.Summer},
		{"autumn", l.Autumn},
		{"spring", l.Spring},
	} {
		if !ValidGrade(s.grade) {
			return fmt.Errorf("invalid %s grade %q", s.season, s.grade)
		}
	}
	return nil
}

// Pereval is a single mountain-pass submission awaiting moderation.
type Pereval struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BeautyTitle string    `gorm:"size:255" json:"beauty_title"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	OtherTitles string    `gorm:"size:255" json:"other_titles"`
	Connect     string    `gorm:"type:text" json:"connect"`
	AddTime     time.Time `gorm:"autoCreateTime" json:"add_time"`
	Status      string    `gorm:"size:10;not null;default:new" json:"status"`

	UserID   uint     `gorm:"not null" json:"-"`
	User     Reporter `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	CoordsID uint     `gorm:"not null" json:"-"`
	Coords   Coords   `gorm:"foreignKey:CoordsID;constraint:OnDelete:CASCADE" json:"coords"`
	LevelID  uint     `gorm:"not null" json:"-"`
	Level    Level    `gorm:"foreignKey:LevelID;constraint:OnDelete:CASCADE" json:"level"`
	Images   []Image  `gorm:"foreignKey:PerevalID;constraint:OnDelete:CASCADE" json:"images"`

	// RawData keeps the submission payload exactly as received, alongside
	// the normalized rows.
	RawData datatypes.JSON `json:"-"`
}

// Image is an opaque encoded blob attached to one Pereval and
// cascade-deleted with it.
type Image struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	PerevalID uint   `gorm:"not null;index" json:"-"`
	Data      string `gorm:"type:text;not null" json:"data"`
	Title     string `gorm:"size:255" json:"title"`
}

// Moderator is an account allowed to move submissions through moderation.
type Moderator struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role     string `gorm:"size:50;not null" json:"role"`
}

// All lists every schema type for automigration.
func All() []any {
	return []any{
		&Reporter{}, &Coords{}, &Level{}, &Pereval{}, &Image{}, &Moderator{},
	}
}
