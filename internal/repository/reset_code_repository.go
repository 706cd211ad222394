package repository

import (
	"time"

	"github.com/sefazor/ourphotos-accounts/internal/models"
	"gorm.io/gorm"
)

type ResetCodeRepository struct {
	db *gorm.DB
}

func NewResetCodeRepository(db *gorm.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

// Replace invalidates the user's unused codes and stores code in one
// transaction.
func (r *ResetCodeRepository) Replace(code *models.PasswordResetCode) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PasswordResetCode{}).
			Where("user_id = ? AND used_at IS NULL", code.UserID).
			Update("used_at", time.Now()).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

// FindUnused returns the newest unused record with codeHash, optionally
// restricted to email.
func (r *ResetCodeRepository) FindUnused(email, codeHash string) (*models.PasswordResetCode, error) {
	q := r.db.Where("code_hash = ? AND used_at IS NULL", codeHash)
	if email != "" {
		q = q.Where("email = ?", email)
	}
	var code models.PasswordResetCode
	if err := q.Order("created_at DESC").First(&code).Error; err != nil {
		return nil, notFound(err)
	}
	return &code, nil
}

// Redeem marks the code used and stores the new password hash in one
// transaction. Only an unused code can be redeemed; ErrNotFound reports one
// that was consumed in the meantime.
func (r *ResetCodeRepository) Redeem(id, userID uint, hashedPassword string, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PasswordResetCode{}).
			Where("id = ? AND used_at IS NULL", id).
			Update("used_at", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrNotFound
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
	})
}

// DeleteExpired removes records that expired before cutoff.
func (r *ResetCodeRepository) DeleteExpired(cutoff time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", cutoff).Delete(&models.PasswordResetCode{})
	return result.RowsAffected, result.Error
}
