package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so the same queries run
// inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// ==================== Questionnaires ====================

const createQuestionnaire = `
INSERT INTO questionnaires (id, name, visibility, questions)
VALUES ($1, $2, $3, $4)
`

type CreateQuestionnaireParams struct {
	ID         string
	Name       string
	Visibility bool
	Questions  []byte
}

func (q *Queries) CreateQuestionnaire(ctx context.Context, params CreateQuestionnaireParams) error {
	_, err := q.db.Exec(ctx, createQuestionnaire, params.ID, params.Name, params.Visibility, params.Questions)
	return err
}

const getQuestionnaire = `
SELECT id, name, visibility, questions, created_at
FROM questionnaires
WHERE id = $1
`

func (q *Queries) GetQuestionnaire(ctx context.Context, id string) (Questionnaire, error) {
	row := q.db.QueryRow(ctx, getQuestionnaire, id)

	var qnr Questionnaire
	err := row.Scan(&qnr.ID, &qnr.Name, &qnr.Visibility, &qnr.Questions, &qnr.CreatedAt)
	return qnr, err
}

const updateQuestionnaire = `
UPDATE questionnaires
SET name = $2, visibility = $3, questions = $4
WHERE id = $1
`

type UpdateQuestionnaireParams struct {
	ID         string
	Name       string
	Visibility bool
	Questions  []byte
}

func (q *Queries) UpdateQuestionnaire(ctx context.Context, params UpdateQuestionnaireParams) error {
	_, err := q.db.Exec(ctx, updateQuestionnaire, params.ID, params.Name, params.Visibility, params.Questions)
	return err
}

const deleteQuestionnaire = `
DELETE FROM questionnaires
WHERE id = $1
`

func (q *Queries) DeleteQuestionnaire(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteQuestionnaire, id)
	return err
}

// ==================== Ownership ====================

const createQuestionnaireOwner = `
INSERT INTO users_questionnaires (user_id, questionnaire_id)
VALUES ($1, $2)
`

type CreateQuestionnaireOwnerParams struct {
	UserID          string
	QuestionnaireID string
}

func (q *Queries) CreateQuestionnaireOwner(ctx context.Context, params CreateQuestionnaireOwnerParams) error {
	_, err := q.db.Exec(ctx, createQuestionnaireOwner, params.UserID, params.QuestionnaireID)
	return err
}

const getQuestionnaireOwnership = `
SELECT q.id, q.name, q.visibility, uq.user_id, jsonb_array_length(q.questions)
FROM questionnaires q
JOIN users_questionnaires uq ON q.id = uq.questionnaire_id
WHERE q.id = $1
`

func (q *Queries) GetQuestionnaireOwnership(ctx context.Context, id string) (QuestionnaireOwnership, error) {
	row := q.db.QueryRow(ctx, getQuestionnaireOwnership, id)

	var own QuestionnaireOwnership
	err := row.Scan(&own.QuestionnaireID, &own.Name, &own.Visibility, &own.OwnerID, &own.QuestionCount)
	return own, err
}

const listQuestionnaireOwnership = `
SELECT q.id, q.name, q.visibility, uq.user_id, jsonb_array_length(q.questions)
FROM questionnaires q
JOIN users_questionnaires uq ON q.id = uq.questionnaire_id
WHERE uq.user_id = $1 OR uq.user_id = $2
ORDER BY q.created_at
`

func (q *Queries) ListQuestionnaireOwnership(ctx context.Context, userID, publicOwnerID string) ([]QuestionnaireOwnership, error) {
	rows, err := q.db.Query(ctx, listQuestionnaireOwnership, userID, publicOwnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []QuestionnaireOwnership
	for rows.Next() {
		var own QuestionnaireOwnership
		if err := rows.Scan(&own.QuestionnaireID, &own.Name, &own.Visibility, &own.OwnerID, &own.QuestionCount); err != nil {
			return nil, err
		}
		items = append(items, own)
	}

	return items, rows.Err()
}

const deleteQuestionnaireOwner = `
DELETE FROM users_questionnaires
WHERE questionnaire_id = $1
`

func (q *Queries) DeleteQuestionnaireOwner(ctx context.Context, questionnaireID string) error {
	_, err := q.db.Exec(ctx, deleteQuestionnaireOwner, questionnaireID)
	return err
}

// ==================== Users ====================

const createUser = `
INSERT INTO users (id, email, password, provider)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password, provider, created_at
`

type CreateUserParams struct {
	ID       string
	Email    string
	Password string
	Provider string
}

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, params.ID, params.Email, params.Password, params.Provider)

	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Provider, &user.CreatedAt)
	return user, err
}

const upsertUser = `
INSERT INTO users (id, email, provider)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
RETURNING id, email, password, provider, created_at
`

type UpsertUserParams struct {
	ID       string
	Email    string
	Provider string
}

func (q *Queries) UpsertUser(ctx context.Context, params UpsertUserParams) (User, error) {
	row := q.db.QueryRow(ctx, upsertUser, params.ID, params.Email, params.Provider)

	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Provider, &user.CreatedAt)
	return user, err
}

const getUserByEmail = `
SELECT id, email, password, provider, created_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)

	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Provider, &user.CreatedAt)
	return user, err
}

// ==================== Responses ====================

const createResponse = `
INSERT INTO responses (questionnaire_id, response)
VALUES ($1, $2)
`

type CreateResponseParams struct {
	QuestionnaireID string
	Response        []byte
}

func (q *Queries) CreateResponse(ctx context.Context, params CreateResponseParams) error {
	_, err := q.db.Exec(ctx, createResponse, params.QuestionnaireID, params.Response)
	return err
}

const listResponses = `
SELECT id, questionnaire_id, response, created_at
FROM responses
WHERE questionnaire_id = $1
ORDER BY id
`

func (q *Queries) ListResponses(ctx context.Context, questionnaireID string) ([]Response, error) {
	rows, err := q.db.Query(ctx, listResponses, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Response
	for rows.Next() {
		var resp Response
		if err := rows.Scan(&resp.ID, &resp.QuestionnaireID, &resp.Response, &resp.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	return items, rows.Err()
}

const deleteResponses = `
DELETE FROM responses
WHERE questionnaire_id = $1
`

func (q *Queries) DeleteResponses(ctx context.Context, questionnaireID string) error {
	_, err := q.db.Exec(ctx, deleteResponses, questionnaireID)
	return err
}
