package repository

import (
	"errors"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/mappers"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// isDuplicateKey matches a unique violation both through gorm's translated
// error and the raw driver SQLSTATE, so the check does not depend on how the
// connection was configured.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type DefaultProfileRepository struct {
	DB *gorm.DB
}

func NewDefaultProfileRepository(db *gorm.DB) *DefaultProfileRepository {
	return &DefaultProfileRepository{DB: db}
}

func (r *DefaultProfileRepository) GetProfile(userID string) (*domain.SellerProfile, error) {
	var profileModel models.SellerProfileModel
	if err := r.DB.First(&profileModel, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	return mappers.ToDomainProfile(&profileModel), nil
}

// AddPushToken appends the token only when it is not already in the array.
// The containment guard runs inside the UPDATE itself, so two devices
// registering the same token concurrently still leave one entry.
func (r *DefaultProfileRepository) AddPushToken(userID, token string) error {
	res := r.DB.Exec(
		`UPDATE seller_profile_models
		 SET push_tokens = array_append(COALESCE(push_tokens, '{}'), ?), updated_at = NOW()
		 WHERE user_id = ? AND NOT (? = ANY(COALESCE(push_tokens, '{}')))`,
		token, userID, token,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Either the token is already registered (fine) or the profile row does
	// not exist yet and has to be created with this first token.
	var count int64
	if err := r.DB.Model(&models.SellerProfileModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := r.DB.Create(&models.SellerProfileModel{
		UserID:     userID,
		PushTokens: pq.StringArray{token},
	}).Error
	if err != nil && isDuplicateKey(err) {
		// lost the create race to another register call, retry the append
		return r.AddPushToken(userID, token)
	}
	return err
}

func (r *DefaultProfileRepository) RemovePushToken(userID, token string) error {
	return r.DB.Exec(
		`UPDATE seller_profile_models
		 SET push_tokens = array_remove(push_tokens, ?), updated_at = NOW()
		 WHERE user_id = ?`,
		token, userID,
	).Error
}
