package model

import "time"

type User struct {
	ID        uint64    `json:"userId" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Devices   []Device  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Thresholds is embedded into Device. A nil bound means the bound is not set
// and is skipped during evaluation.
type Thresholds struct {
	TempMin     *float64 `json:"tempMin" yaml:"tempMin"`
	TempMax     *float64 `json:"tempMax" yaml:"tempMax"`
	HumidityMin *float64 `json:"humidityMin" yaml:"humidityMin"`
	HumidityMax *float64 `json:"humidityMax" yaml:"humidityMax"`
}

type Device struct {
	ID         uint64     `json:"id" gorm:"primaryKey"`
	UserID     uint64     `json:"userId" gorm:"not null;uniqueIndex:idx_devices_owner_name"`
	Name       string     `json:"name" gorm:"not null;uniqueIndex:idx_devices_owner_name"`
	Location   string     `json:"location" gorm:"default:'Not set'"`
	Thresholds Thresholds `json:"thresholds" gorm:"embedded;embeddedPrefix:threshold_"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Readings   []Reading  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Alerts     []Alert    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Reading rows are immutable once written, they only go away when the owning
// device is deleted.
type Reading struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	DeviceID    uint64    `json:"deviceId" gorm:"not null;index"`
	Temperature float64   `json:"temperature" gorm:"not null"`
	Humidity    float64   `json:"humidity" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

type Alert struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	DeviceID    uint64    `json:"deviceId" gorm:"not null;index"`
	Description string    `json:"description" gorm:"not null"`
	Seen        bool      `json:"seen" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt"`
}
