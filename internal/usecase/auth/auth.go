package authUseCase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/matchpoint-app/backend/internal/entity"
	userRepo "github.com/matchpoint-app/backend/internal/repository/user"
	"github.com/matchpoint-app/backend/pkg/jwt"
)

type IAuthUseCase interface {
	SignupUser(ctx context.Context, request entity.CreateUserRequest) (*entity.User, error)
	SignIn(ctx context.Context, email, username, password string) (string, error)
}

type authUseCase struct {
	userRepo userRepo.IUserRepo
	tokens   *jwt.Manager
}

func New(userRepo userRepo.IUserRepo, tokens *jwt.Manager) IAuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (p *authUseCase) SignupUser(ctx context.Context, authData entity.CreateUserRequest) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(authData.Password+authData.Email), 12)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Name:     authData.Name,
		Email:    authData.Email,
		Username: authData.Username,
		Password: string(hashedPassword),
	}

	return p.userRepo.CreateUser(ctx, user)
}

func (p *authUseCase) SignIn(ctx context.Context, email, username, password string) (string, error) {
	user, err := p.userRepo.GetUserByUnameOrEmail(ctx, email, username)
	if err != nil {
		return "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password+user.Email)); err != nil {
		return "", entity.ErrInvalidCredentials
	}

	return p.tokens.CreateToken(user.ID, user.Email, user.Username)
}
