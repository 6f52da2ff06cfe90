package questionnaires

import (
	"github.com/davidalade/quill/api/middlewares"
	"github.com/davidalade/quill/api/tokens"
	"github.com/davidalade/quill/database"
	"github.com/davidalade/quill/queue"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func SetupRoutes(r *chi.Mux, queue queue.Queue, db *pgxpool.Pool, queries *database.Queries) {

	questionnairesRouter := chi.NewRouter()

	store := NewQuestionnaireStore(queries, database.NewDBTransactor(db))
	tokenService := tokens.NewTokenService()

	handler := Handler{
		Store: store,
		Queue: queue,
	}

	// Authentication is optional everywhere: anonymous callers may create and
	// respond, and the access rules decide what they can touch.
	questionnairesRouter.Use(middlewares.OptionalAuthMiddleware(tokenService))

	questionnairesRouter.Get("/", handler.ListQuestionnairesHandler)
	questionnairesRouter.Get("/{questionnaireID}", handler.GetQuestionnaireHandler)
	questionnairesRouter.Post("/", handler.CreateQuestionnaireHandler)
	questionnairesRouter.Put("/{questionnaireID}", handler.UpdateQuestionnaireHandler)
	questionnairesRouter.Delete("/{questionnaireID}", handler.DeleteQuestionnaireHandler)

	r.Mount("/questionnaires", questionnairesRouter)

	return
}
