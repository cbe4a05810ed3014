package seed

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/placenet/placement-backend/internal/app/models"
	appRepos "github.com/placenet/placement-backend/internal/app/repositories"
	"github.com/placenet/placement-backend/internal/pkg/auth"
)

const (
	defaultSuperuserEmail    = "superuser@placement.local"
	defaultSuperuserPassword = "ChangeMe123!"
)

// CreateDefaultData ensures a superuser account exists so the portal is
// administrable on first boot. Credentials come from SUPERUSER_EMAIL /
// SUPERUSER_PASSWORD, falling back to development defaults.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	email := os.Getenv("SUPERUSER_EMAIL")
	if email == "" {
		email = defaultSuperuserEmail
	}
	password := os.Getenv("SUPERUSER_PASSWORD")
	if password == "" {
		password = defaultSuperuserPassword
	}

	exists, err := userRepo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Superuser account already present")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	superuser := &appModels.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Placement",
		LastName:  "Superuser",
		RoleType:  appModels.RoleSuperuser,
	}
	if _, err := userRepo.CreateUser(ctx, superuser); err != nil {
		return err
	}

	lgr.Info().Str("email", email).Msg("Superuser account created")
	return nil
}
