package services

import (
	"errors"
	"math/rand"
	"strings"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// defaultAvatarColors is the palette a new user's avatar color is picked
// from when the request does not supply one.
var defaultAvatarColors = []string{
	"#5B8DEF", "#5ECFB1", "#F5A864", "#F56565", "#9F7AEA", "#48BB78",
}

// CreateUserInput is the signup payload
type CreateUserInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"fullName"`
	Role        string `json:"role" binding:"required"`
	AvatarColor string `json:"avatarColor"`
}

// UpdateUserInput carries partial-update fields; nil means leave untouched
type UpdateUserInput struct {
	Username    *string `json:"username"`
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	Status      *string `json:"status"`
	AvatarColor *string `json:"avatarColor"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetAllUsers() ([]dto.UserProfile, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	profiles := make([]dto.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, dto.FromUser(&users[i]))
	}
	return profiles, nil
}

func (s *UserService) GetUserByID(id uint) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	profile := dto.FromUser(&user)
	return &profile, nil
}

// CreateUser rejects duplicate usernames/emails without persisting anything,
// hashes the password, defaults status to ACTIVE and resolves the avatar
// color from the request or the palette.
func (s *UserService) CreateUser(in CreateUserInput) (*dto.UserProfile, error) {
	role, err := models.ParseUserRole(in.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.usernameExists(in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.emailExists(in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		Status:       models.UserActive,
		AvatarColor:  resolveAvatarColor(in.AvatarColor),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	profile := dto.FromUser(&user)
	return &profile, nil
}

// UpdateUser applies only the supplied fields. Changing username or email
// re-validates uniqueness against all other rows first.
func (s *UserService) UpdateUser(id uint, in UpdateUserInput) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}

	if in.Username != nil && strings.TrimSpace(*in.Username) != "" {
		newUsername := strings.TrimSpace(*in.Username)
		if newUsername != user.Username {
			taken, err := s.usernameExists(newUsername)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrUsernameTaken
			}
			user.Username = newUsername
		}
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}

	if in.Email != nil {
		newEmail := strings.TrimSpace(*in.Email)
		if newEmail != user.Email {
			taken, err := s.emailExists(newEmail)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailTaken
			}
			user.Email = newEmail
		}
	}

	if in.Role != nil {
		role, err := models.ParseUserRole(*in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}

	if in.Status != nil {
		status, err := models.ParseUserStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		user.Status = status
	}

	if in.AvatarColor != nil {
		user.AvatarColor = *in.AvatarColor
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	profile := dto.FromUser(&user)
	return &profile, nil
}

// DeactivateUser flips status to INACTIVE; the row is kept
func (s *UserService) DeactivateUser(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return err
	}
	user.Status = models.UserInactive
	return s.db.Save(&user).Error
}

// ActivateUser flips status back to ACTIVE
func (s *UserService) ActivateUser(id uint) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	user.Status = models.UserActive
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	profile := dto.FromUser(&user)
	return &profile, nil
}

func (s *UserService) usernameExists(username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *UserService) emailExists(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func resolveAvatarColor(provided string) string {
	if strings.TrimSpace(provided) != "" {
		return provided
	}
	return defaultAvatarColors[rand.Intn(len(defaultAvatarColors))]
}
