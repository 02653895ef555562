package gormstore

import (
	"time"

	"gorm.io/datatypes"
)

// Vessel represents the vessels table.
type Vessel struct {
	Name      string    `gorm:"primaryKey;size:25"`
	LowCap    int       `gorm:"not null"`
	HighCap   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Vessel) TableName() string { return "vessels" }

// Sailing represents the sailings table.
type Sailing struct {
	ID                string    `gorm:"primaryKey;size:10"`
	VesselName        string    `gorm:"size:26;not null;index"`
	LowRemaining      float64   `gorm:"not null"`
	HighRemaining     float64   `gorm:"not null"`
	ReservationsCount int       `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (Sailing) TableName() string { return "sailings" }

// Reservation represents the reservations table. The primary key is the
// same padded composite id the file backend stores.
type Reservation struct {
	ID             string         `gorm:"primaryKey;size:21"`
	LicensePlate   string         `gorm:"size:11;not null;index"`
	SailingID      string         `gorm:"size:10;not null;index"`
	VehicleLength  float64        `gorm:"not null"`
	VehicleHeight  float64        `gorm:"not null"`
	Phone          string         `gorm:"size:15;not null"`
	Onboard        bool           `gorm:"not null"`
	ExpectedReturn datatypes.Date `gorm:""`
	ReservedLane   string         `gorm:"size:4;not null"`
	CreatedAt      time.Time      `gorm:"not null"`
}

func (Reservation) TableName() string { return "reservations" }

// Vehicle represents the vehicles directory table.
type Vehicle struct {
	LicensePlate  string    `gorm:"primaryKey;size:11"`
	Phone         string    `gorm:"size:15;not null"`
	VehicleLength float64   `gorm:"not null"`
	VehicleHeight float64   `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (Vehicle) TableName() string { return "vehicles" }
