package usecase

import (
	"context"
	"errors"
	"strconv"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
)

// Defaults used until a setting is first written
const (
	defaultAutoInviteScreening = false
	defaultAutoInviteThreshold = 75
)

type settingsUsecase struct {
	settingRepo domain.SettingRepository
}

func NewSettingsUsecase(settingRepo domain.SettingRepository) domain.SettingsUsecase {
	return &settingsUsecase{settingRepo: settingRepo}
}

func (u *settingsUsecase) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings := &domain.Settings{
		AutoInviteScreening: defaultAutoInviteScreening,
		AutoInviteThreshold: defaultAutoInviteThreshold,
	}

	if raw, err := u.settingRepo.Get(ctx, domain.SettingAutoInviteScreening); err == nil {
		if v, err := strconv.ParseBool(raw); err == nil {
			settings.AutoInviteScreening = v
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	if raw, err := u.settingRepo.Get(ctx, domain.SettingAutoInviteThreshold); err == nil {
		if v, err := strconv.Atoi(raw); err == nil {
			settings.AutoInviteThreshold = v
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	return settings, nil
}

func (u *settingsUsecase) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error) {
	if update.AutoInviteThreshold != nil {
		if *update.AutoInviteThreshold < 1 || *update.AutoInviteThreshold > 100 {
			return nil, apperror.BadRequest("auto_invite_threshold must be between 1 and 100")
		}
		if err := u.settingRepo.Set(ctx, domain.SettingAutoInviteThreshold, strconv.Itoa(*update.AutoInviteThreshold)); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	if update.AutoInviteScreening != nil {
		if err := u.settingRepo.Set(ctx, domain.SettingAutoInviteScreening, strconv.FormatBool(*update.AutoInviteScreening)); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	return u.GetSettings(ctx)
}
