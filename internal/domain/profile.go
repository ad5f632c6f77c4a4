package domain

import "time"

// SellerProfile is the slice of the seller account this service cares about:
// the device push-token set and the per-seller mute flag.
type SellerProfile struct {
	UserID             string
	PushTokens         []string
	NotificationsMuted bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ProfileRepository interface {
	GetProfile(userID string) (*SellerProfile, error)
	// AddPushToken adds token to the seller's set. Duplicate registration is
	// a no-op; the set guarantee is enforced by the storage layer, not by a
	// read-modify-write in the application.
	AddPushToken(userID, token string) error
	// RemovePushToken removes exactly this token, leaving the seller's other
	// device tokens intact.
	RemovePushToken(userID, token string) error
}
