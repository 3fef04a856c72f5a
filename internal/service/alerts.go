package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/roomsense/roomsense-backend/internal/model"
)

const alertPageSize = 10

type AlertPage struct {
	TotalPages  int64         `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Alerts      []model.Alert `json:"alerts"`
}

func (s *Service) ListAlerts(userID, deviceID uint64, page int) (*AlertPage, error) {
	if _, err := s.ownedDevice(userID, deviceID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	scope := s.db.Model(&model.Alert{}).Where("device_id = ?", deviceID)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, err
	}

	alerts := make([]model.Alert, 0)
	err := scope.
		Order("created_at DESC").
		Offset((page - 1) * alertPageSize).
		Limit(alertPageSize).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	return &AlertPage{
		TotalPages:  (total + alertPageSize - 1) / alertPageSize,
		CurrentPage: page,
		Alerts:      alerts,
	}, nil
}

// MarkAlertSeen flips the seen flag. Marking an already seen alert is a
// successful no-op.
func (s *Service) MarkAlertSeen(userID, alertID uint64) (*model.Alert, error) {
	var alert model.Alert
	err := s.db.
		Joins("JOIN devices ON devices.id = alerts.device_id").
		Where("alerts.id = ? AND devices.user_id = ?", alertID, userID).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !alert.Seen {
		if err := s.db.Model(&alert).Update("seen", true).Error; err != nil {
			return nil, err
		}
	}
	return &alert, nil
}
