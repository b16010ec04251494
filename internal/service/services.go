package service

import (
	"github.com/mcortez/taskstack/internal/config"
	"github.com/mcortez/taskstack/internal/repository"
)

type Services struct {
	Token *TokenService
	Auth  *AuthService
	Task  *TaskService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	tokens := NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	return &Services{
		Token: tokens,
		Auth:  NewAuthService(repos.User, repos.Session, tokens, cfg.RefreshTokenTTL),
		Task:  NewTaskService(repos.Task),
	}
}
