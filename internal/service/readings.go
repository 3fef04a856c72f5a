package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roomsense/roomsense-backend/internal/model"
)

const defaultReadingPageSize = 100

// ReadingQuery narrows and orders a readings listing. The date filter only
// applies when both bounds are present, matching the ingestion API contract.
type ReadingQuery struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	Order     string
}

type ReadingPage struct {
	TotalPages  int64           `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Readings    []model.Reading `json:"readings"`
}

type Stats struct {
	MinTemp      *float64 `json:"minTemp"`
	MaxTemp      *float64 `json:"maxTemp"`
	AvgTemp      *float64 `json:"avgTemp"`
	MinHum       *float64 `json:"minHum"`
	MaxHum       *float64 `json:"maxHum"`
	AvgHum       *float64 `json:"avgHum"`
	ReadingCount int64    `json:"readingCount"`
}

var readingSortColumns = map[string]string{
	"createdAt":   "created_at",
	"temperature": "temperature",
	"humidity":    "humidity",
}

// IngestReading stores the sample with a server-assigned timestamp and then
// evaluates the device thresholds. The reading is durable once stored,
// alerting after that point is best-effort and never fails the ingestion.
func (s *Service) IngestReading(userID, deviceID uint64, temperature, humidity float64) (*model.Reading, error) {
	device, err := s.ownedDevice(userID, deviceID)
	if err != nil {
		return nil, err
	}

	reading := model.Reading{
		DeviceID:    device.ID,
		Temperature: temperature,
		Humidity:    humidity,
	}
	if err := s.db.Create(&reading).Error; err != nil {
		return nil, err
	}

	s.evaluateThresholds(device, &reading)
	return &reading, nil
}

// evaluateThresholds creates one alert per breached bound and pushes each to
// the owner's live connection if there is one.
func (s *Service) evaluateThresholds(device *model.Device, reading *model.Reading) {
	t := device.Thresholds

	var descriptions []string
	if t.TempMin != nil && reading.Temperature < *t.TempMin {
		descriptions = append(descriptions, fmt.Sprintf(
			"Temperature %.1f is below the minimum threshold of %.1f", reading.Temperature, *t.TempMin))
	}
	if t.TempMax != nil && reading.Temperature > *t.TempMax {
		descriptions = append(descriptions, fmt.Sprintf(
			"Temperature %.1f is above the maximum threshold of %.1f", reading.Temperature, *t.TempMax))
	}
	if t.HumidityMin != nil && reading.Humidity < *t.HumidityMin {
		descriptions = append(descriptions, fmt.Sprintf(
			"Humidity %.1f is below the minimum threshold of %.1f", reading.Humidity, *t.HumidityMin))
	}
	if t.HumidityMax != nil && reading.Humidity > *t.HumidityMax {
		descriptions = append(descriptions, fmt.Sprintf(
			"Humidity %.1f is above the maximum threshold of %.1f", reading.Humidity, *t.HumidityMax))
	}

	for _, description := range descriptions {
		alert := model.Alert{
			DeviceID:    device.ID,
			Description: description,
		}
		if err := s.db.Create(&alert).Error; err != nil {
			s.logger.Error("failed to store alert",
				zap.Uint64("deviceId", device.ID),
				zap.Error(err),
			)
			continue
		}
		s.notifier.Push(device.UserID, "alert", alert)
	}
}

func (s *Service) ListReadings(userID, deviceID uint64, query ReadingQuery) (*ReadingPage, error) {
	if _, err := s.ownedDevice(userID, deviceID); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultReadingPageSize
	}

	column, ok := readingSortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(query.Order, "ASC") {
		order = "ASC"
	}

	scope := s.db.Model(&model.Reading{}).Where("device_id = ?", deviceID)
	if query.StartDate != nil && query.EndDate != nil {
		scope = scope.Where("created_at BETWEEN ? AND ?", *query.StartDate, *query.EndDate)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, err
	}

	readings := make([]model.Reading, 0)
	err := scope.
		Order(column + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	return &ReadingPage{
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		Readings:    readings,
	}, nil
}

func (s *Service) GetStats(userID, deviceID uint64, startDate, endDate *time.Time) (*Stats, error) {
	if _, err := s.ownedDevice(userID, deviceID); err != nil {
		return nil, err
	}

	scope := s.db.Model(&model.Reading{}).Where("device_id = ?", deviceID)
	if startDate != nil {
		scope = scope.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		scope = scope.Where("created_at <= ?", *endDate)
	}

	var stats Stats
	err := scope.Select(
		"MIN(temperature) AS min_temp," +
			"MAX(temperature) AS max_temp," +
			"AVG(temperature) AS avg_temp," +
			"MIN(humidity) AS min_hum," +
			"MAX(humidity) AS max_hum," +
			"AVG(humidity) AS avg_hum," +
			"COUNT(id) AS reading_count",
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
