package questionnaires

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxOptions      = 10
	maxOptionLength = 256
	maxTextLength   = 256
)

// Result is the outcome every validator and access decision reports. Valid
// results carry code 200; failures carry a human-readable reason and the HTTP
// status the boundary should translate it to.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Code   int    `json:"code"`
}

func OK() Result {
	return Result{Valid: true, Code: http.StatusOK}
}

func Invalid(code int, format string, args ...any) Result {
	return Result{Valid: false, Reason: fmt.Sprintf(format, args...), Code: code}
}

// Err wraps a failed result so it can travel through error returns without
// losing the reason or code. A valid result yields nil.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ResultError{Result: r}
}

type ResultError struct {
	Result Result
}

func (e *ResultError) Error() string {
	return e.Result.Reason
}

// QuestionnaireInput is a questionnaire as submitted, before the presence and
// type checks have run. Name and Visibility stay loosely typed so missing and
// malformed fields are distinguishable.
type QuestionnaireInput struct {
	ID         string     `json:"id,omitempty"`
	Name       *string    `json:"name"`
	Visibility any        `json:"visibility"`
	Questions  []Question `json:"questions"`
}

// ValidateQuestion checks a single question definition. Rules run in order
// and the first violation wins.
func ValidateQuestion(question Question) Result {
	questionType, found := TypeOf(question.Type)

	if !found {
		return Invalid(http.StatusBadRequest, "Question must be of valid question type")
	}

	if !questionType.HasOptions && question.Options != nil {
		return Invalid(http.StatusBadRequest, "Question options must be null if hasOptions is false")
	}

	if questionType.HasOptions && len(question.Options) == 0 {
		return Invalid(http.StatusBadRequest, "Question options must be defined if hasOptions is true")
	}

	if question.ID == "" {
		return Invalid(http.StatusBadRequest, "Question must have ID")
	}

	if question.Options != nil {
		if len(question.Options) > maxOptions {
			return Invalid(http.StatusBadRequest, "Must be fewer than %d options. '%s' contains more than %d options.",
				maxOptions, strings.Join(question.Options, ","), maxOptions)
		}

		seen := make(map[string]bool, len(question.Options))
		for _, option := range question.Options {
			if stripSpace(option) == "" {
				return Invalid(http.StatusBadRequest, "Options must not have empty text or contain only spaces.")
			}

			if seen[option] {
				return Invalid(http.StatusBadRequest, "Question options must be unique. Found duplicate option '%s'", option)
			}

			if utf8.RuneCountInString(option) > maxOptionLength {
				return Invalid(http.StatusBadRequest, "Options must be fewer than %d characters. Option '%s' is longer than %d characters",
					maxOptionLength, option, maxOptionLength)
			}

			seen[option] = true
		}
	}

	if utf8.RuneCountInString(question.Text) > maxTextLength {
		return Invalid(http.StatusBadRequest, "Questions must be fewer than %d characters. Question '%s' is longer than %d characters",
			maxTextLength, question.Text, maxTextLength)
	}

	if stripSpace(question.Text) == "" {
		return Invalid(http.StatusBadRequest, "Questions must not have empty titles or contain only spaces.")
	}

	return OK()
}

// ValidateQuestionnaire checks a whole submitted questionnaire. The first
// failing question's result is propagated verbatim.
func ValidateQuestionnaire(qnr QuestionnaireInput) Result {
	if qnr.Name == nil || qnr.Questions == nil || qnr.Visibility == nil {
		return Invalid(http.StatusBadRequest, "Missing required parameter. name: '%v', questions: '%v', visibility: '%v'",
			deref(qnr.Name), qnr.Questions, qnr.Visibility)
	}

	if _, ok := qnr.Visibility.(bool); !ok {
		return Invalid(http.StatusBadRequest, "Visibility must be a boolean value. Found '%v'", qnr.Visibility)
	}

	for _, question := range qnr.Questions {
		if res := ValidateQuestion(question); !res.Valid {
			return res
		}
	}

	return OK()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
