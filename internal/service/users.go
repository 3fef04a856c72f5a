package service

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"github.com/roomsense/roomsense-backend/internal/auth"
	"github.com/roomsense/roomsense-backend/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (s *Service) Register(email, password string) (*model.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Message: "A valid email is required"}
	}
	if password == "" {
		return nil, &ValidationError{Message: "Password must not be empty"}
	}

	var existing model.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := model.User{Email: email, Password: hash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Login(email, password string) (string, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user.ID)
}

func (s *Service) ChangePassword(user *model.User, oldPassword, newPassword string) error {
	if newPassword == "" {
		return &ValidationError{Message: "New password must not be empty"}
	}
	if !auth.CheckPassword(user.Password, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(user).Update("password", hash).Error
}
