package routesV1Swipe

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/matchpoint-app/backend/internal/entity"
	"github.com/matchpoint-app/backend/internal/middleware"
	swipeUseCase "github.com/matchpoint-app/backend/internal/usecase/swipe"
	"github.com/matchpoint-app/backend/pkg/http_util"
)

// SwipeHandler records a decision about another profile and reports the
// outcome, including the match when the like turned out to be mutual.
func SwipeHandler(c echo.Context, swipeCase swipeUseCase.ISwipeUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	request, err := http_util.Decode[entity.SwipeRequest](c)
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

	swipe, match, outcome, err := swipeCase.Swipe(c.Request().Context(), user.ID, request.TargetID, request.IsLike)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.SwipeResponse]{
		Message: "Swipe outcome",
		Data: entity.SwipeResponse{
			Outcome:     outcome.String(),
			OutcomeEnum: outcome,
			Swipe:       swipe,
			Match:       match,
		},
	})
}

func MutualLikesHandler(c echo.Context, swipeCase swipeUseCase.ISwipeUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	skip, limit := http_util.Pagination(c)

	userIDs, err := swipeCase.FindMutualLikes(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.MutualLikesResponse]{
		Message: "Mutual likes fetched successfully",
		Data:    entity.MutualLikesResponse{UserIDs: userIDs},
	})
}

func ListMatchesHandler(c echo.Context, swipeCase swipeUseCase.ISwipeUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	skip, limit := http_util.Pagination(c)

	matches, err := swipeCase.ListMatches(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.MatchListResponse]{
		Message: "Matches fetched successfully",
		Data:    entity.MatchListResponse{Matches: matches},
	})
}
