package v1

import (
	"fmt"
	"io"
	"net/http"

	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
	"talentbridge-backend/pkg/imaging"
	"talentbridge-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	files  storage.Storage
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, files storage.Storage, loginLimit gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC: authUC,
		files:  files,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", loginLimit, handler.Login)
		publicAuth.POST("/register", handler.Register)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.PUT("/me", handler.UpdateProfile)
		protectedAuth.POST("/change-password", handler.ChangePassword)
		protectedAuth.POST("/me/avatar", handler.UploadAvatar)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	CompanyName string `json:"company_name"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	CompanyName *string `json:"company_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Register godoc
// @Summary      Recruiter Registration
// @Description  Register a new recruiter account and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.CompanyName)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", token)
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with email and password, returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", token)
}

// Me godoc
// @Summary      Current User
// @Description  Return the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// UpdateProfile godoc
// @Summary      Update Profile
// @Description  Update the authenticated user's profile fields
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/me [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	user, err := h.authUC.UpdateProfile(c.Request.Context(), userID, domain.ProfileUpdate{
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", user)
}

// ChangePassword godoc
// @Summary      Change Password
// @Description  Change the authenticated user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        passwords  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/change-password [post]
// @Security     BearerAuth
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	if err := h.authUC.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed", nil)
}

// UploadAvatar godoc
// @Summary      Upload Avatar
// @Description  Upload a profile picture. Images are downscaled server-side.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/me/avatar [post]
// @Security     BearerAuth
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Avatar file is required"))
		return
	}
	if fileHeader.Size > 5<<20 {
		c.Error(apperror.BadRequest("Avatar file exceeds the 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	scaled, err := imaging.DownscaleAvatar(data)
	if err != nil {
		c.Error(apperror.BadRequest("Avatar must be a valid JPEG or PNG image"))
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	url, err := h.files.Save(c.Request.Context(), "avatars", fmt.Sprintf("user_%d.jpg", userID), "image/jpeg", scaled)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	user, err := h.authUC.UpdateAvatar(c.Request.Context(), userID, url)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Avatar updated", user)
}
