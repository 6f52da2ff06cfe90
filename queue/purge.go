package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/davidalade/quill/database"
	"github.com/hibiken/asynq"
)

const TypeResponsePurge = "responses:purge"

// ResponsePurgePayload asks the worker to delete every stored response of a
// questionnaire that no longer exists.
type ResponsePurgePayload struct {
	QuestionnaireID string
}

func (p *ResponsePurgePayload) Process() (*asynq.Task, error) {
	payload, err := json.Marshal(p)

	if err != nil {
		return nil, fmt.Errorf("marshal response purge payload: %w", err)
	}

	return asynq.NewTask(TypeResponsePurge, payload), nil
}

func (p *ResponsePurgePayload) ProcessorName() string {
	return "response-purge"
}

func HandleResponsePurgeTask(queries *database.Queries) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ResponsePurgePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("error decoding response purge payload: %w", err)
		}

		log.Printf("purging responses for questionnaire: %s", payload.QuestionnaireID)

		if err := queries.DeleteResponses(ctx, payload.QuestionnaireID); err != nil {
			err = fmt.Errorf("error purging responses for questionnaire %s: %w", payload.QuestionnaireID, err)
			log.Println(err)
			return err
		}

		return nil
	}
}
