package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/roomsense/roomsense-backend/internal/model"
)

const defaultDevicePageSize = 10

// DeviceUpdate carries a partial update, nil fields stay untouched.
type DeviceUpdate struct {
	Name       *string
	Location   *string
	Thresholds *model.Thresholds
}

func (s *Service) ListDevices(userID uint64, page, limit int) ([]model.Device, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultDevicePageSize
	}

	devices := make([]model.Device, 0)
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (s *Service) CreateDevice(userID uint64, name, location string) (*model.Device, error) {
	if name == "" {
		return nil, &ValidationError{Message: "Device name must not be empty"}
	}
	if location == "" {
		location = "Not set"
	}

	taken, err := s.deviceNameTaken(userID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	device := model.Device{
		UserID:   userID,
		Name:     name,
		Location: location,
	}
	if err := s.db.Create(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (s *Service) UpdateDevice(userID, deviceID uint64, update DeviceUpdate) (*model.Device, error) {
	device, err := s.ownedDevice(userID, deviceID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != device.Name {
		if *update.Name == "" {
			return nil, &ValidationError{Message: "Device name must not be empty"}
		}
		taken, err := s.deviceNameTaken(userID, *update.Name, device.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateName
		}
		device.Name = *update.Name
	}
	if update.Location != nil {
		device.Location = *update.Location
	}
	if update.Thresholds != nil {
		device.Thresholds = *update.Thresholds
	}

	if err := s.db.Save(device).Error; err != nil {
		return nil, err
	}
	return device, nil
}

func (s *Service) SetThresholds(userID, deviceID uint64, thresholds model.Thresholds) (*model.Device, error) {
	return s.UpdateDevice(userID, deviceID, DeviceUpdate{Thresholds: &thresholds})
}

// DeleteDevice removes the device together with its readings and alerts in
// one transaction. The schema carries cascade constraints as well, the
// explicit deletes keep the behavior independent of driver pragma state.
func (s *Service) DeleteDevice(userID, deviceID uint64) error {
	device, err := s.ownedDevice(userID, deviceID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", device.ID).Delete(&model.Reading{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_id = ?", device.ID).Delete(&model.Alert{}).Error; err != nil {
			return err
		}
		return tx.Delete(device).Error
	})
}

// ownedDevice resolves a device only if it belongs to userID. Missing and
// foreign devices are indistinguishable to the caller.
func (s *Service) ownedDevice(userID, deviceID uint64) (*model.Device, error) {
	var device model.Device
	err := s.db.Where("id = ? AND user_id = ?", deviceID, userID).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (s *Service) deviceNameTaken(userID uint64, name string, excludeID uint64) (bool, error) {
	var count int64
	err := s.db.Model(&model.Device{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, excludeID).
		Count(&count).Error
	return count > 0, err
}
