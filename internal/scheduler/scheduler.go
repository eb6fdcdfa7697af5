package scheduler

import (
	"filevault-backend/config"
	"filevault-backend/internal/repository"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

var scheduler *gocron.Scheduler

// Initialize starts the background scheduler with the blocklist cleanup job.
// Rows whose token expired on its own can never match a live token again, so
// anything older than the access-token TTL is safe to prune.
func Initialize(blockRepo *repository.BlockedTokenRepository, cfg *config.Config) {
	scheduler = gocron.NewScheduler(time.Local)

	ttl := time.Duration(cfg.Auth.AccessTokenTTL) * time.Minute
	_, err := scheduler.Every(1).Hour().Do(func() {
		if err := blockRepo.CleanupExpired(time.Now().Add(-ttl)); err != nil {
			log.Error().Err(err).Msg("Blocklist cleanup failed")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to schedule blocklist cleanup")
	}

	scheduler.StartAsync()
}

// Stop gracefully shuts down the scheduler
func Stop() {
	if scheduler != nil {
		scheduler.Stop()
	}
}
