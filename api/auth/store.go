package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidalade/quill/api/custom_errors"
	"github.com/davidalade/quill/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const UniqueViolationCode = "23505"

type Store interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (database.User, error)
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	UpsertGoogleUser(ctx context.Context, subject, email string) (database.User, error)
}

type Repository struct {
	queries *database.Queries
}

func NewAuthStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

func (r *Repository) CreateUser(ctx context.Context, email, hashedPassword string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.CreateUser(ctx, database.CreateUserParams{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashedPassword,
		Provider: "password",
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolationCode {
		return database.User{}, custom_errors.ErrConflict
	}
	if err != nil {
		return database.User{}, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.User{}, custom_errors.ErrNotFound
	}
	if err != nil {
		return database.User{}, fmt.Errorf("error getting user: %v", err)
	}

	return user, nil
}

// UpsertGoogleUser records a user keyed by the verified Google subject, so the
// same Google account always maps to the same owner id.
func (r *Repository) UpsertGoogleUser(ctx context.Context, subject, email string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.UpsertUser(ctx, database.UpsertUserParams{
		ID:       subject,
		Email:    email,
		Provider: "google",
	})
	if err != nil {
		return database.User{}, fmt.Errorf("error upserting user: %v", err)
	}

	return user, nil
}
