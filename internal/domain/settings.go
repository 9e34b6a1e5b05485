package domain

import "context"

// Setting keys
const (
	SettingAutoInviteScreening = "auto_invite_screening"
	SettingAutoInviteThreshold = "auto_invite_threshold"
)

// Settings is the typed view over the key/value settings table
type Settings struct {
	AutoInviteScreening bool `json:"auto_invite_screening"`
	AutoInviteThreshold int  `json:"auto_invite_threshold"`
}

type SettingsUpdate struct {
	AutoInviteScreening *bool `json:"auto_invite_screening"`
	AutoInviteThreshold *int  `json:"auto_invite_threshold"`
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type SettingsUsecase interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, update SettingsUpdate) (*Settings, error)
}
