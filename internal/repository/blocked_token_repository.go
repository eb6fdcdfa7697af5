package repository

import (
	"filevault-backend/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockedTokenRepository struct {
	db *gorm.DB
}

func NewBlockedTokenRepository(db *gorm.DB) *BlockedTokenRepository {
	return &BlockedTokenRepository{db: db}
}

// BlockToken records accessToken as revoked for (userID, deviceID). A single
// conditional upsert against the unique (user_id, device_id) index keeps at
// most one row per pair even under concurrent logouts.
func (r *BlockedTokenRepository) BlockToken(userID, deviceID, accessToken string) error {
	blocked := &models.BlockedToken{
		ID:          uuid.New().String(),
		UserID:      userID,
		DeviceID:    deviceID,
		AccessToken: accessToken,
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"access_token": accessToken,
			"updated_at":   time.Now(),
		}),
	}).Create(blocked)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to block token")
		return result.Error
	}
	return nil
}

// IsBlocked reports whether exactly this (userID, deviceID, token) triple has
// been revoked. Tokens issued after the logout carry a different value and
// pass.
func (r *BlockedTokenRepository) IsBlocked(userID, deviceID, token string) (bool, error) {
	var count int64
	result := r.db.Model(&models.BlockedToken{}).
		Where("user_id = ? AND device_id = ? AND access_token = ?", userID, deviceID, token).
		Count(&count)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to check blocked token")
		return false, result.Error
	}
	return count > 0, nil
}

// CleanupExpired removes blocklist rows older than the given cutoff. A row
// whose token expired on its own can never match a live token again.
func (r *BlockedTokenRepository) CleanupExpired(olderThan time.Time) error {
	result := r.db.Where("updated_at < ?", olderThan).Delete(&models.BlockedToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("rows", result.RowsAffected).Msg("Pruned expired blocklist entries")
	}
	return nil
}
