package services

import (
	"errors"
	"strings"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers every authentication failure. Unknown user,
// inactive account, blank password and wrong password are deliberately not
// distinguished.
var ErrInvalidCredentials = errors.New("invalid username or password, or account is inactive")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Authenticate checks a username/plaintext-password pair and returns the
// user's public profile. No session token is issued; the token field is an
// empty placeholder.
func (s *AuthService) Authenticate(username, password string) (*dto.LoginResult, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != models.UserActive {
		return nil, ErrInvalidCredentials
	}

	if strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &dto.LoginResult{
		Token: "",
		User:  dto.FromUser(&user),
	}, nil
}
