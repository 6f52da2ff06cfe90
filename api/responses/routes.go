package responses

import (
	"github.com/davidalade/quill/api/middlewares"
	"github.com/davidalade/quill/api/questionnaires"
	"github.com/davidalade/quill/api/tokens"
	"github.com/davidalade/quill/database"
	"github.com/davidalade/quill/queue"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func SetupRoutes(r *chi.Mux, queue queue.Queue, db *pgxpool.Pool, queries *database.Queries) {

	responsesRouter := chi.NewRouter()

	store := NewResponseStore(queries)
	questionnaireStore := questionnaires.NewQuestionnaireStore(queries, database.NewDBTransactor(db))
	tokenService := tokens.NewTokenService()

	handler := Handler{
		Store:              store,
		QuestionnaireStore: questionnaireStore,
	}

	responsesRouter.Use(middlewares.OptionalAuthMiddleware(tokenService))

	// Respondents submit anonymously; reading results is owner-gated.
	responsesRouter.Post("/{questionnaireID}", handler.CreateResponseHandler)
	responsesRouter.Get("/{questionnaireID}", handler.GetResponsesHandler)

	r.Mount("/responses", responsesRouter)

	return
}
