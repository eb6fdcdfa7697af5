package auth

import (
	"errors"
	"filevault-backend/config"
	"filevault-backend/internal/models"
	"filevault-backend/internal/repository"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrEmailTaken         = errors.New("email already in use")
	ErrWrongPassword      = errors.New("invalid password")
	ErrMissingToken       = errors.New("refresh token is missing")
	ErrTokenNotRecognized = errors.New("refresh token not recognized")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLength = 6

type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	blockRepo   *repository.BlockedTokenRepository
}

func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	blockRepo *repository.BlockedTokenRepository,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		blockRepo:   blockRepo,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(email, password string) (*models.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a fresh token pair for the given
// device. Only the session of that device is replaced; signins from other
// devices stay valid.
func (s *AuthService) Login(email, password, deviceID string) (string, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", ErrInvalidEmail
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrWrongPassword
	}

	accessToken, refreshToken, err := GenerateTokenPair(user.ID, deviceID, user.Email, config.Get())
	if err != nil {
		return "", "", err
	}

	if err := s.sessionRepo.UpsertSession(user.ID, deviceID, accessToken, refreshToken); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Refresh rotates the access token of the session identified by the refresh
// token's claims. The refresh token itself is never rotated here; it stays
// valid until the next full signin for that device.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingToken
	}

	claims, err := ValidateRefreshToken(refreshToken, config.Get())
	if err != nil {
		return "", err
	}

	// The presented token must still be the one on file for this device.
	// Anything else is a replay of a pair that was since replaced.
	session, err := s.sessionRepo.GetSession(claims.UserID, claims.DeviceID)
	if err != nil {
		return "", err
	}
	if session == nil || session.RefreshToken != refreshToken {
		return "", ErrTokenNotRecognized
	}

	accessToken, err := GenerateAccessToken(claims.UserID, claims.DeviceID, claims.Email, config.Get())
	if err != nil {
		return "", err
	}

	if err := s.sessionRepo.UpdateAccessToken(claims.UserID, claims.DeviceID, accessToken); err != nil {
		return "", err
	}

	return accessToken, nil
}

// Logout blocks the access token currently held by the device session. Only
// that exact token value is revoked; a token issued later for the same device
// is valid until a fresh logout blocks it too.
func (s *AuthService) Logout(userID, deviceID string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	session, err := s.sessionRepo.GetSession(userID, deviceID)
	if err != nil {
		return err
	}
	if session == nil {
		// No active session for this device, nothing to revoke.
		return nil
	}

	return s.blockRepo.BlockToken(userID, deviceID, session.AccessToken)
}

// GetUserByID resolves a user id to its record.
func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}
