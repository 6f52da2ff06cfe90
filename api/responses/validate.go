package responses

import (
	"math"
	"net/http"
	"strings"

	"github.com/davidalade/quill/api/questionnaires"
	"github.com/shopspring/decimal"
)

// ValidateQNRResponse checks a submitted response against the questionnaire it
// answers. The caller fetches the questionnaire; a nil questionnaire means the
// fetch already failed and is reported as not found. Rules run in order and
// the first violation wins: required answers, then extraneous keys, then the
// per-question rules.
func ValidateQNRResponse(response map[string]any, questionnaire *questionnaires.Questionnaire) questionnaires.Result {
	if questionnaire == nil {
		return questionnaires.Invalid(http.StatusNotFound, "Questionnaire could not be found")
	}

	for _, question := range questionnaire.Questions {
		if question.IsRequired() {
			answer, present := response[question.ID]
			if !present || answer == nil || answer == "" {
				return questionnaires.Invalid(http.StatusBadRequest, "All required questions must be answered")
			}
		}
	}

	// Extra data is rejected wholesale, not stripped.
	for key := range response {
		foundMatch := false

		for _, question := range questionnaire.Questions {
			if key == question.ID {
				foundMatch = true
				break
			}
		}

		if !foundMatch {
			return questionnaires.Invalid(http.StatusBadRequest, "Response must not contain any additional data")
		}
	}

	for _, question := range questionnaire.Questions {
		answer, present := response[question.ID]
		if !present || answer == nil {
			continue
		}

		if res := ValidateResponse(answer, question); !res.Valid {
			return res
		}
	}

	return questionnaires.OK()
}

// ValidateResponse checks a single answer against its question's type rules.
func ValidateResponse(answer any, question questionnaires.Question) questionnaires.Result {
	questionType, found := questionnaires.TypeOf(question.Type)
	if !found {
		return questionnaires.Invalid(http.StatusBadRequest, "Question must be of valid question type")
	}

	if questionType.UniqueOptions {
		if _, isCollection := asList(answer); isCollection || isMap(answer) {
			return questionnaires.Invalid(http.StatusBadRequest, "Only one option may be selected for question with uniqueOptions")
		}

		selected, ok := answer.(string)
		if !ok || !containsOption(question.Options, selected) {
			return questionnaires.Invalid(http.StatusBadRequest, "Only included options may be provided as a response to question that hasOptions")
		}
	}

	if questionType.HasOptions && !questionType.UniqueOptions {
		selected, ok := asList(answer)
		if !ok {
			return questionnaires.Invalid(http.StatusBadRequest, "Only included options may be provided as a response to question that hasOptions")
		}

		for _, option := range selected {
			s, ok := option.(string)
			if !ok || !containsOption(question.Options, s) {
				return questionnaires.Invalid(http.StatusBadRequest, "Only included options may be provided as a response to question that hasOptions")
			}
		}
	}

	if questionType.IsNumber && !isNumeric(answer) {
		return questionnaires.Invalid(http.StatusBadRequest, "Only numeric options are valid for question that requires number")
	}

	return questionnaires.OK()
}

func containsOption(options []string, candidate string) bool {
	for _, option := range options {
		if option == candidate {
			return true
		}
	}
	return false
}

func asList(answer any) ([]any, bool) {
	switch v := answer.(type) {
	case []any:
		return v, true
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}
		return list, true
	default:
		return nil, false
	}
}

func isMap(answer any) bool {
	_, ok := answer.(map[string]any)
	return ok
}

// isNumeric reports whether the answer parses as a finite number. JSON numbers
// arrive as float64; string-encoded numerals are accepted too.
func isNumeric(answer any) bool {
	switch v := answer.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case int, int32, int64:
		return true
	case string:
		_, err := decimal.NewFromString(strings.TrimSpace(v))
		return err == nil
	default:
		return false
	}
}
