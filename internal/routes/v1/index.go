package routesV1

import (
	"github.com/labstack/echo"

	"github.com/matchpoint-app/backend/internal/middleware"
	userRepo "github.com/matchpoint-app/backend/internal/repository/user"
	routesV1Auth "github.com/matchpoint-app/backend/internal/routes/v1/auth"
	routesV1Chat "github.com/matchpoint-app/backend/internal/routes/v1/chat"
	routesV1Profile "github.com/matchpoint-app/backend/internal/routes/v1/profile"
	routesV1Swipe "github.com/matchpoint-app/backend/internal/routes/v1/swipe"
	authUseCase "github.com/matchpoint-app/backend/internal/usecase/auth"
	chatUseCase "github.com/matchpoint-app/backend/internal/usecase/chat"
	profileUseCase "github.com/matchpoint-app/backend/internal/usecase/profile"
	swipeUseCase "github.com/matchpoint-app/backend/internal/usecase/swipe"
	"github.com/matchpoint-app/backend/pkg/jwt"
)

type UseCases struct {
	Auth    authUseCase.IAuthUseCase
	Swipe   swipeUseCase.ISwipeUseCase
	Chat    chatUseCase.IChatUseCase
	Profile profileUseCase.IProfileUseCase
}

func InitV1Routes(e *echo.Echo, tokens *jwt.Manager, users userRepo.IUserRepo, cases UseCases) {
	v1 := e.Group("/v1")

	v1.POST("/auth/sign-up", func(c echo.Context) error {
		return routesV1Auth.SignUpHandler(c, cases.Auth)
	})
	v1.POST("/auth/sign-in", func(c echo.Context) error {
		return routesV1Auth.SignInHandler(c, cases.Auth)
	})

	protected := v1.Group("", middleware.JWTMiddleware(tokens, users))

	protected.POST("/swipes", func(c echo.Context) error {
		return routesV1Swipe.SwipeHandler(c, cases.Swipe)
	})
	protected.GET("/likes/mutual", func(c echo.Context) error {
		return routesV1Swipe.MutualLikesHandler(c, cases.Swipe)
	})
	protected.GET("/matches", func(c echo.Context) error {
		return routesV1Swipe.ListMatchesHandler(c, cases.Swipe)
	})

	protected.POST("/matches/:id/messages", func(c echo.Context) error {
		return routesV1Chat.SendMessageHandler(c, cases.Chat)
	})
	protected.GET("/matches/:id/messages", func(c echo.Context) error {
		return routesV1Chat.ListMessagesHandler(c, cases.Chat)
	})
	protected.POST("/messages/:messageID/delivered", func(c echo.Context) error {
		return routesV1Chat.MarkDeliveredHandler(c, cases.Chat)
	})
	protected.POST("/messages/:messageID/read", func(c echo.Context) error {
		return routesV1Chat.MarkReadHandler(c, cases.Chat)
	})
	protected.DELETE("/messages/:messageID", func(c echo.Context) error {
		return routesV1Chat.DeleteMessageHandler(c, cases.Chat)
	})

	protected.GET("/profiles/me", func(c echo.Context) error {
		return routesV1Profile.GetOwnProfileHandler(c, cases.Profile)
	})
	protected.PUT("/profiles/me", func(c echo.Context) error {
		return routesV1Profile.UpdateOwnProfileHandler(c, cases.Profile)
	})
	protected.GET("/profiles/discover", func(c echo.Context) error {
		return routesV1Profile.DiscoverHandler(c, cases.Profile)
	})
}
