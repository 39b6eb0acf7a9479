// Package handler contains the HTTP handlers for the public API.
package handler

import (
	"log/slog"
	"net/http"

	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/response"
	"pulse/internal/domain/entity"
	"pulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user and auth handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// VerifyPhoneRequest is the body of the phone verification step.
type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required"`
}

// CompleteProfileRequest is the body of the profile-setup step.
type CompleteProfileRequest struct {
	UserID    string   `json:"user_id" validate:"required,uuid"`
	Name      string   `json:"name" validate:"required"`
	Age       int      `json:"age" validate:"required,gte=18,lte=99"`
	Gender    string   `json:"gender" validate:"required,oneof=male female other"`
	Interests []string `json:"interests"`
	AvatarURL string   `json:"avatar_url"`
}

// UpdateSubscriptionRequest is the body of a tier change.
type UpdateSubscriptionRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free premium elite"`
}

// VerifyPhoneResponse is the payload returned on successful verification.
type VerifyPhoneResponse struct {
	User        any    `json:"user"`
	AccessToken string `json:"access_token"`
	IsNewUser   bool   `json:"is_new_user"`
}

// VerifyPhone handles the phone verification login step.
func (h *UserHandler) VerifyPhone(c echo.Context) error {
	var req VerifyPhoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.userUC.VerifyPhone(c.Request().Context(), usecase.VerifyPhoneInput{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, VerifyPhoneResponse{
		User:        output.User,
		AccessToken: output.AccessToken,
		IsNewUser:   output.IsNewUser,
	}, "Phone verified successfully")
}

// CompleteProfile handles the profile-setup step after verification.
func (h *UserHandler) CompleteProfile(c echo.Context) error {
	var req CompleteProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID format")
	}

	user, err := h.userUC.CompleteProfile(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile completed successfully")
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// UpdateSubscription switches the authenticated user's paid tier.
func (h *UserHandler) UpdateSubscription(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userUC.UpdateSubscription(c.Request().Context(), usecase.UpdateSubscriptionInput{
		UserID: userID,
		Tier:   entity.SubscriptionTier(req.Tier),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Subscription updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
