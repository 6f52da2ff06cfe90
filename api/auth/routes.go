package auth

import (
	"github.com/davidalade/quill/api/tokens"
	"github.com/davidalade/quill/database"
	"github.com/davidalade/quill/queue"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func SetupRoutes(r *chi.Mux, queue queue.Queue, db *pgxpool.Pool, queries *database.Queries) {

	authRouter := chi.NewRouter()

	store := NewAuthStore(queries)
	tokenService := tokens.NewTokenService()

	handler := Handler{
		Store:  store,
		Token:  tokenService,
		Google: NewGoogleVerifier(),
	}

	authRouter.Post("/register", handler.RegisterUserHandler)
	authRouter.Post("/login", handler.LoginUserHandler)
	authRouter.Post("/google", handler.GoogleLoginHandler)

	r.Mount("/auth", authRouter)

	return
}
