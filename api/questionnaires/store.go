package questionnaires

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/davidalade/quill/api/custom_errors"
	"github.com/davidalade/quill/database"
	"github.com/jackc/pgx/v5"
)

type Store interface {
	// Questionnaire management
	CreateQuestionnaire(ctx context.Context, qnr Questionnaire, ownerID string) error
	GetQuestionnaire(ctx context.Context, id string) (Questionnaire, error)
	QuestionnaireExists(ctx context.Context, id string) (bool, error)
	UpdateQuestionnaire(ctx context.Context, qnr Questionnaire, userID string) error
	DeleteQuestionnaire(ctx context.Context, id, userID string) error

	// Ownership
	GetOwnership(ctx context.Context, id string) (Ownership, error)
	ListOwnership(ctx context.Context, userID string) ([]Ownership, error)
}

type Repository struct {
	queries    *database.Queries
	transactor database.Transactor
}

func NewQuestionnaireStore(queries *database.Queries, transactor database.Transactor) *Repository {
	return &Repository{queries: queries, transactor: transactor}
}

// CreateQuestionnaire inserts the questionnaire and its owner link in one
// transaction so a questionnaire can never exist without an owner record.
func (r *Repository) CreateQuestionnaire(ctx context.Context, qnr Questionnaire, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	questions, err := json.Marshal(qnr.Questions)
	if err != nil {
		return fmt.Errorf("error marshaling questions: %v", err)
	}

	return r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		q := database.Tx(ctx, r.queries)

		err := q.CreateQuestionnaire(ctx, database.CreateQuestionnaireParams{
			ID:         qnr.ID,
			Name:       qnr.Name,
			Visibility: qnr.Visibility,
			Questions:  questions,
		})
		if err != nil {
			return fmt.Errorf("error creating questionnaire: %v", err)
		}

		err = q.CreateQuestionnaireOwner(ctx, database.CreateQuestionnaireOwnerParams{
			UserID:          ownerID,
			QuestionnaireID: qnr.ID,
		})
		if err != nil {
			return fmt.Errorf("error linking questionnaire owner: %v", err)
		}

		return nil
	})
}

func (r *Repository) GetQuestionnaire(ctx context.Context, id string) (Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row, err := r.queries.GetQuestionnaire(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Questionnaire{}, custom_errors.ErrNotFound
	}
	if err != nil {
		return Questionnaire{}, fmt.Errorf("error getting questionnaire: %v", err)
	}

	qnr := Questionnaire{
		ID:         row.ID,
		Name:       row.Name,
		Visibility: row.Visibility,
	}

	if err := json.Unmarshal(row.Questions, &qnr.Questions); err != nil {
		return Questionnaire{}, fmt.Errorf("error unmarshaling questions: %v", err)
	}

	return qnr, nil
}

func (r *Repository) QuestionnaireExists(ctx context.Context, id string) (bool, error) {
	_, err := r.GetQuestionnaire(ctx, id)
	if errors.Is(err, custom_errors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateQuestionnaire replaces the questionnaire after re-checking edit access.
// The ownership read, the access decision and the write share one transaction
// so a concurrent edit or delete cannot slip between check and use. Denials
// surface as *ResultError.
func (r *Repository) UpdateQuestionnaire(ctx context.Context, qnr Questionnaire, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	questions, err := json.Marshal(qnr.Questions)
	if err != nil {
		return fmt.Errorf("error marshaling questions: %v", err)
	}

	return r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		q := database.Tx(ctx, r.queries)

		own, err := q.GetQuestionnaireOwnership(ctx, qnr.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return custom_errors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("error getting questionnaire ownership: %v", err)
		}

		if err := CheckAccess(own.OwnerID, userID, true).Err(); err != nil {
			return err
		}

		err = q.UpdateQuestionnaire(ctx, database.UpdateQuestionnaireParams{
			ID:         qnr.ID,
			Name:       qnr.Name,
			Visibility: qnr.Visibility,
			Questions:  questions,
		})
		if err != nil {
			return fmt.Errorf("error updating questionnaire: %v", err)
		}

		return nil
	})
}

// DeleteQuestionnaire removes the questionnaire and its owner link after
// re-checking access inside the same transaction. Responses are purged
// separately by the background queue.
func (r *Repository) DeleteQuestionnaire(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		q := database.Tx(ctx, r.queries)

		own, err := q.GetQuestionnaireOwnership(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return custom_errors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("error getting questionnaire ownership: %v", err)
		}

		if err := CheckAccess(own.OwnerID, userID, false).Err(); err != nil {
			return err
		}

		if err := q.DeleteQuestionnaireOwner(ctx, id); err != nil {
			return fmt.Errorf("error deleting questionnaire owner link: %v", err)
		}

		if err := q.DeleteQuestionnaire(ctx, id); err != nil {
			return fmt.Errorf("error deleting questionnaire: %v", err)
		}

		return nil
	})
}

func (r *Repository) GetOwnership(ctx context.Context, id string) (Ownership, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	own, err := r.queries.GetQuestionnaireOwnership(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ownership{}, custom_errors.ErrNotFound
	}
	if err != nil {
		return Ownership{}, fmt.Errorf("error getting questionnaire ownership: %v", err)
	}

	return ownershipFromRow(own), nil
}

// ListOwnership returns the ownership records visible to userID: the shared
// public bucket plus the user's own questionnaires.
func (r *Repository) ListOwnership(ctx context.Context, userID string) ([]Ownership, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.queries.ListQuestionnaireOwnership(ctx, userID, PublicOwner)
	if err != nil {
		return nil, fmt.Errorf("error listing questionnaire ownership: %v", err)
	}

	items := make([]Ownership, 0, len(rows))
	for _, row := range rows {
		items = append(items, ownershipFromRow(row))
	}

	return items, nil
}

func ownershipFromRow(row database.QuestionnaireOwnership) Ownership {
	return Ownership{
		QuestionnaireID: row.QuestionnaireID,
		Name:            row.Name,
		Visibility:      row.Visibility,
		OwnerID:         row.OwnerID,
		QuestionCount:   int(row.QuestionCount),
	}
}
