package routesV1Profile

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/matchpoint-app/backend/internal/entity"
	"github.com/matchpoint-app/backend/internal/middleware"
	profileUseCase "github.com/matchpoint-app/backend/internal/usecase/profile"
	"github.com/matchpoint-app/backend/pkg/http_util"
)

func GetOwnProfileHandler(c echo.Context, profileCase profileUseCase.IProfileUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	profile, err := profileCase.GetOwnProfile(c.Request().Context(), user.ID)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[*entity.Profile]{
		Message: "Profile fetched successfully",
		Data:    profile,
	})
}

func UpdateOwnProfileHandler(c echo.Context, profileCase profileUseCase.IProfileUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	request, err := http_util.Decode[entity.UpdateProfileRequest](c)
	if err != nil {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	problems := request.Validate(c.Request().Context())
	if len(problems) != 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]interface{}{
			"message":  "Bad request check your request",
			"problems": problems,
		})
	}

	profile, err := profileCase.UpdateOwnProfile(c.Request().Context(), user.ID, request)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[*entity.Profile]{
		Message: "Profile updated successfully",
		Data:    profile,
	})
}

func DiscoverHandler(c echo.Context, profileCase profileUseCase.IProfileUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	skip, limit := http_util.Pagination(c)

	profiles, err := profileCase.Discover(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.DiscoverResponse]{
		Message: "Profiles fetched successfully",
		Data:    entity.DiscoverResponse{Profiles: profiles},
	})
}
