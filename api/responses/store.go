package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/davidalade/quill/database"
)

type Store interface {
	CreateResponse(ctx context.Context, questionnaireID string, response map[string]any) error
	ListResponses(ctx context.Context, questionnaireID string) ([]map[string]any, error)
}

type Repository struct {
	queries *database.Queries
}

func NewResponseStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

func (r *Repository) CreateResponse(ctx context.Context, questionnaireID string, response map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error marshaling response: %v", err)
	}

	err = r.queries.CreateResponse(ctx, database.CreateResponseParams{
		QuestionnaireID: questionnaireID,
		Response:        payload,
	})
	if err != nil {
		return fmt.Errorf("error creating response: %v", err)
	}

	return nil
}

func (r *Repository) ListResponses(ctx context.Context, questionnaireID string) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.queries.ListResponses(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("error listing responses: %v", err)
	}

	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		var response map[string]any
		if err := json.Unmarshal(row.Response, &response); err != nil {
			return nil, fmt.Errorf("error unmarshaling response: %v", err)
		}
		items = append(items, response)
	}

	return items, nil
}
