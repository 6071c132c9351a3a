package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/openlibms/libms/config"
	redisadapter "github.com/openlibms/libms/internal/adapters/redis"
	"github.com/openlibms/libms/internal/data"
	"github.com/openlibms/libms/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Books   *service.BookService
	Departs *service.DepartService
	Borrows *service.BorrowService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and adapters into the service layer.
func NewServices(deps *ServiceDeps) ServiceContainer {
	userRepo := data.NewUserRepo(deps.DB)
	bookRepo := data.NewBookRepo(deps.DB)
	departRepo := data.NewDepartRepo(deps.DB)
	borrowRepo := data.NewBorrowRepo(deps.DB)

	sessions := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, deps.Config.Auth.SessionKeyPrefix)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:           userRepo,
		Sessions:        sessions,
		SessionDuration: deps.Config.Auth.SessionDuration,
	})

	return ServiceContainer{
		Auth:    auth,
		Users:   service.NewUserService(service.UserServiceOptions{Users: userRepo}),
		Books:   service.NewBookService(service.BookServiceOptions{Books: bookRepo}),
		Departs: service.NewDepartService(service.DepartServiceOptions{Departs: departRepo}),
		Borrows: service.NewBorrowService(service.BorrowServiceOptions{Borrows: borrowRepo}),
	}
}
