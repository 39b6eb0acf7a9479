package handler

import (
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// pathUUID parses a UUID path parameter, surfacing a validation failure for
// malformed values.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(map[string]string{
			name: "must be a valid UUID",
		})
	}

	return id, nil
}

func (r CompleteProfileRequest) toInput() (usecase.CompleteProfileInput, error) {
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return usecase.CompleteProfileInput{}, err
	}

	return usecase.CompleteProfileInput{
		UserID:    userID,
		Name:      r.Name,
		Age:       r.Age,
		Gender:    entity.Gender(r.Gender),
		Interests: r.Interests,
		AvatarURL: r.AvatarURL,
	}, nil
}
