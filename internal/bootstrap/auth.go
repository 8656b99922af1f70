package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/foodcart/config"
	"github.com/target/foodcart/internal/adapters/jwtissuer"
	"github.com/target/foodcart/internal/core"
	"github.com/target/foodcart/internal/data"
	"github.com/target/foodcart/internal/data/cryptoutil"
	"github.com/target/foodcart/internal/service"
)

// AccountDeps contains the dependencies for the backend account service.
type AccountDeps struct {
	Auth   config.AuthConfig
	DB     *sql.DB
	Users  core.UserRepository // overrides DB when set
	Logger *slog.Logger
}

// BuildAccountService wires the user repository, bcrypt hasher and JWT issuer.
func BuildAccountService(deps AccountDeps) (*service.AccountService, error) {
	users := deps.Users
	if users == nil {
		if deps.DB == nil {
			return nil, errors.New("account service requires a database or user repository")
		}
		users = data.NewUserRepo(deps.DB)
	}

	hasher, err := cryptoutil.NewBcryptHasher(deps.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("build password hasher: %w", err)
	}
	issuer, err := jwtissuer.New(jwtissuer.Options{
		Secret: []byte(deps.Auth.JWTSecret),
		TTL:    deps.Auth.TokenTTL,
		Issuer: deps.Auth.Issuer,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build token issuer: %w", err)
	}

	return service.NewAccountService(service.AccountServiceOptions{
		Users:  users,
		Hasher: hasher,
		Tokens: issuer,
		Logger: deps.Logger,
	}), nil
}
