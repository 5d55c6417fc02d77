package routesV1Chat

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/matchpoint-app/backend/internal/entity"
	"github.com/matchpoint-app/backend/internal/middleware"
	chatUseCase "github.com/matchpoint-app/backend/internal/usecase/chat"
	"github.com/matchpoint-app/backend/pkg/http_util"
)

func SendMessageHandler(c echo.Context, chatCase chatUseCase.IChatUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	request, err := http_util.Decode[entity.SendMessageRequest](c)
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

	message, err := chatCase.SendMessage(c.Request().Context(), user.ID, c.Param("id"), request.Content, request.ContentType)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[*entity.Message]{
		Message: "Message sent",
		Data:    message,
	})
}

func ListMessagesHandler(c echo.Context, chatCase chatUseCase.IChatUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	skip, limit := http_util.Pagination(c)

	messages, err := chatCase.ListMessages(c.Request().Context(), user.ID, c.Param("id"), skip, limit)
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.MessageListResponse]{
		Message: "Messages fetched successfully",
		Data:    entity.MessageListResponse{Messages: messages},
	})
}

func MarkDeliveredHandler(c echo.Context, chatCase chatUseCase.IChatUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	message, err := chatCase.MarkDelivered(c.Request().Context(), user.ID, c.Param("messageID"))
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[*entity.Message]{
		Message: "Message marked as delivered",
		Data:    message,
	})
}

func MarkReadHandler(c echo.Context, chatCase chatUseCase.IChatUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	message, err := chatCase.MarkRead(c.Request().Context(), user.ID, c.Param("messageID"))
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[*entity.Message]{
		Message: "Message marked as read",
		Data:    message,
	})
}

func DeleteMessageHandler(c echo.Context, chatCase chatUseCase.IChatUseCase) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	message, err := chatCase.DeleteMessage(c.Request().Context(), user.ID, c.Param("messageID"))
	if err != nil {
		return http_util.Encode(c, entity.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[*entity.Message]{
		Message: "Message deleted",
		Data:    message,
	})
}
