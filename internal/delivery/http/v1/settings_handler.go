package v1

import (
	"net/http"

	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsUC domain.SettingsUsecase
}

func NewSettingsHandler(protected *gin.RouterGroup, settingsUC domain.SettingsUsecase) {
	handler := &SettingsHandler{settingsUC: settingsUC}

	settings := protected.Group("/settings")
	{
		settings.GET("", handler.Get)
		settings.PUT("", handler.Update)
	}
}

// Get godoc
// @Summary      Get workspace settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /settings [get]
// @Security     BearerAuth
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsUC.GetSettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Settings retrieved", settings)
}

// Update godoc
// @Summary      Update workspace settings
// @Description  Update the auto-invite flag and threshold. Omitted fields keep their value.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        settings  body      domain.SettingsUpdate  true  "Settings fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /settings [put]
// @Security     BearerAuth
func (h *SettingsHandler) Update(c *gin.Context) {
	var req domain.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	settings, err := h.settingsUC.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Settings updated", settings)
}
