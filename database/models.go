package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Questionnaire struct {
	ID         string
	Name       string
	Visibility bool
	Questions  []byte
	CreatedAt  pgtype.Timestamptz
}

type QuestionnaireOwner struct {
	UserID          string
	QuestionnaireID string
}

type QuestionnaireOwnership struct {
	QuestionnaireID string
	Name            string
	Visibility      bool
	OwnerID         string
	QuestionCount   int32
}

type User struct {
	ID        string
	Email     pgtype.Text
	Password  pgtype.Text
	Provider  string
	CreatedAt pgtype.Timestamptz
}

type Response struct {
	ID              int64
	QuestionnaireID string
	Response        []byte
	CreatedAt       pgtype.Timestamptz
}
