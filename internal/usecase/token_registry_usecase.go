package usecase

import (
	"fmt"
	"strings"

	"github.com/Tengoku18/thirft-verse-sub001/internal/domain"
)

type TokenRegistryUsecase interface {
	RegisterToken(userID, token string) error
	UnregisterToken(userID, token string) error
}

// DefaultTokenRegistryUsecase manages the per-seller device token set.
// The set guarantee itself lives in the repository's conditional update;
// this layer only validates input.
type DefaultTokenRegistryUsecase struct {
	ProfileRepo domain.ProfileRepository
}

func NewDefaultTokenRegistryUsecase(profileRepo domain.ProfileRepository) *DefaultTokenRegistryUsecase {
	return &DefaultTokenRegistryUsecase{ProfileRepo: profileRepo}
}

func (uc *DefaultTokenRegistryUsecase) RegisterToken(userID, token string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: user id and token are required", domain.ErrMissingData)
	}
	return uc.ProfileRepo.AddPushToken(userID, token)
}

func (uc *DefaultTokenRegistryUsecase) UnregisterToken(userID, token string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: user id and token are required", domain.ErrMissingData)
	}
	return uc.ProfileRepo.RemovePushToken(userID, token)
}
