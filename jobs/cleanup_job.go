package jobs

import (
	"log"
	"time"

	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/models"
)

// PurgeExpiredResetTokens clears password-reset tokens past their expiry so
// stale links stop matching anything.
func PurgeExpiredResetTokens() {
	log.Println("Running job: PurgeExpiredResetTokens...")

	result := database.DB.Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_token_expires_at < ?", time.Now()).
		Updates(map[string]any{
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})

	if result.Error != nil {
		log.Printf("Error purging expired reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleared %d expired reset token(s).", result.RowsAffected)
	}
}
