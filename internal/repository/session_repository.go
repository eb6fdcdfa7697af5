package repository

import (
	"filevault-backend/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// UpsertSession stores a fresh token pair for (userID, deviceID), replacing
// any pair previously held for that device. Sessions of other devices are
// untouched. The conflict target is the unique (user_id, device_id) index, so
// concurrent signins for the same device cannot create duplicate rows.
func (r *SessionRepository) UpsertSession(userID, deviceID, accessToken, refreshToken string) error {
	session := &models.Session{
		ID:           uuid.New().String(),
		UserID:       userID,
		DeviceID:     deviceID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"updated_at":    time.Now(),
		}),
	}).Create(session)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to upsert session")
		return result.Error
	}
	return nil
}

func (r *SessionRepository) GetSession(userID, deviceID string) (*models.Session, error) {
	var session models.Session
	result := r.db.Where("user_id = ? AND device_id = ?", userID, deviceID).First(&session)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to get session")
		return nil, result.Error
	}

	return &session, nil
}

// UpdateAccessToken rotates only the access token of a device session,
// leaving its refresh token in place.
func (r *SessionRepository) UpdateAccessToken(userID, deviceID, accessToken string) error {
	result := r.db.Model(&models.Session{}).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Update("access_token", accessToken)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to update access token")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
