package api

import (
	"net/http"

	"github.com/davidalade/quill/api/auth"
	"github.com/davidalade/quill/api/jsonutil"
	"github.com/davidalade/quill/api/questionnaires"
	"github.com/davidalade/quill/api/responses"
	"github.com/davidalade/quill/database"
	"github.com/davidalade/quill/queue"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Routes(queries *database.Queries, queue queue.Queue, pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {

		jsonutil.WriteJSONResponse(w, "hello from quill", http.StatusOK)
	})

	auth.SetupRoutes(r, queue, pool, queries)
	questionnaires.SetupRoutes(r, queue, pool, queries)
	responses.SetupRoutes(r, queue, pool, queries)

	return r
}
