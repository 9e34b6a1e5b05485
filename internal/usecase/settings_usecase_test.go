package usecase_test

import (
	"context"
	"testing"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetSettingsDefaults(t *testing.T) {
	settingRepo := new(MockSettingRepo)
	uc := usecase.NewSettingsUsecase(settingRepo)

	settingRepo.On("Get", mock.Anything, domain.SettingAutoInviteScreening).Return("", domain.ErrNotFound)
	settingRepo.On("Get", mock.Anything, domain.SettingAutoInviteThreshold).Return("", domain.ErrNotFound)

	settings, err := uc.GetSettings(context.Background())
	assert.NoError(t, err)
	assert.False(t, settings.AutoInviteScreening)
	assert.Equal(t, 75, settings.AutoInviteThreshold)
}

func TestGetSettingsParsesStoredValues(t *testing.T) {
	settingRepo := new(MockSettingRepo)
	uc := usecase.NewSettingsUsecase(settingRepo)

	settingRepo.On("Get", mock.Anything, domain.SettingAutoInviteScreening).Return("true", nil)
	settingRepo.On("Get", mock.Anything, domain.SettingAutoInviteThreshold).Return("82", nil)

	settings, err := uc.GetSettings(context.Background())
	assert.NoError(t, err)
	assert.True(t, settings.AutoInviteScreening)
	assert.Equal(t, 82, settings.AutoInviteThreshold)
}

func TestUpdateSettingsThresholdBounds(t *testing.T) {
	settingRepo := new(MockSettingRepo)
	uc := usecase.NewSettingsUsecase(settingRepo)

	for _, bad := range []int{0, -5, 101} {
		v := bad
		_, err := uc.UpdateSettings(context.Background(), domain.SettingsUpdate{AutoInviteThreshold: &v})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "between 1 and 100")
	}
	settingRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	settingRepo := new(MockSettingRepo)
	uc := usecase.NewSettingsUsecase(settingRepo)

	enabled := true
	threshold := 80
	settingRepo.On("Set", mock.Anything, domain.SettingAutoInviteThreshold, "80").Return(nil)
	settingRepo.On("Set", mock.Anything, domain.SettingAutoInviteScreening, "true").Return(nil)
	settingRepo.On("Get", mock.Anything, domain.SettingAutoInviteScreening).Return("true", nil)
	settingRepo.On("Get", mock.Anything, domain.SettingAutoInviteThreshold).Return("80", nil)

	settings, err := uc.UpdateSettings(context.Background(), domain.SettingsUpdate{
		AutoInviteScreening: &enabled,
		AutoInviteThreshold: &threshold,
	})
	assert.NoError(t, err)
	assert.True(t, settings.AutoInviteScreening)
	assert.Equal(t, 80, settings.AutoInviteThreshold)
	settingRepo.AssertExpectations(t)
}
