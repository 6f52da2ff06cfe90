package questionnaires_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/davidalade/quill/api/questionnaires"
)

// ============================================================================
// Test Helpers
// ============================================================================

func assertValid(t *testing.T, got questionnaires.Result) {
	t.Helper()
	if !got.Valid {
		t.Errorf("result invalid, reason = %q, want valid", got.Reason)
	}
	if got.Code != http.StatusOK {
		t.Errorf("code = %d, want %d", got.Code, http.StatusOK)
	}
}

func assertInvalid(t *testing.T, got questionnaires.Result, wantCode int) {
	t.Helper()
	if got.Valid {
		t.Fatalf("result valid, want invalid")
	}
	if got.Code != wantCode {
		t.Errorf("code = %d, want %d", got.Code, wantCode)
	}
	if got.Reason == "" {
		t.Errorf("reason empty, want a reason")
	}
}

func assertReasonContains(t *testing.T, got questionnaires.Result, want string) {
	t.Helper()
	if !strings.Contains(got.Reason, want) {
		t.Errorf("reason = %q, want it to contain %q", got.Reason, want)
	}
}

func textQuestion(id, text string) questionnaires.Question {
	return questionnaires.Question{ID: id, Text: text, Type: "text"}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// ============================================================================
// Question type registry
// ============================================================================

func TestTypeOf(t *testing.T) {
	for _, id := range []string{"text", "number", "single-select", "multi-select"} {
		questionType, found := questionnaires.TypeOf(id)
		if !found {
			t.Fatalf("TypeOf(%q) not found", id)
		}
		if questionType.ID != id {
			t.Errorf("TypeOf(%q).ID = %q", id, questionType.ID)
		}
	}

	if _, found := questionnaires.TypeOf("essay"); found {
		t.Error("TypeOf(essay) found, want not found")
	}
}

func TestRegistryConstraints(t *testing.T) {
	single, _ := questionnaires.TypeOf("single-select")
	if !single.HasOptions || !single.UniqueOptions || single.IsNumber {
		t.Errorf("single-select constraints = %+v", single)
	}

	multi, _ := questionnaires.TypeOf("multi-select")
	if !multi.HasOptions || multi.UniqueOptions {
		t.Errorf("multi-select constraints = %+v", multi)
	}

	number, _ := questionnaires.TypeOf("number")
	if number.HasOptions || !number.IsNumber {
		t.Errorf("number constraints = %+v", number)
	}

	text, _ := questionnaires.TypeOf("text")
	if text.HasOptions || text.UniqueOptions || text.IsNumber {
		t.Errorf("text constraints = %+v", text)
	}
}

// ============================================================================
// Question validation
// ============================================================================

func TestValidateQuestionValid(t *testing.T) {
	question := questionnaires.Question{
		ID:      "q1",
		Text:    "Favourite language?",
		Type:    "single-select",
		Options: []string{"Go", "C"},
	}

	// Pure function: repeated calls agree.
	assertValid(t, questionnaires.ValidateQuestion(question))
	assertValid(t, questionnaires.ValidateQuestion(question))
}

func TestValidateQuestionUnknownType(t *testing.T) {
	res := questionnaires.ValidateQuestion(questionnaires.Question{ID: "q1", Text: "Q", Type: "essay"})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "valid question type")
}

func TestValidateQuestionOptionsInvariant(t *testing.T) {
	// Options on a type that does not carry them.
	res := questionnaires.ValidateQuestion(questionnaires.Question{
		ID: "q1", Text: "Q", Type: "text", Options: []string{"a"},
	})
	assertInvalid(t, res, http.StatusBadRequest)

	// No options on a type that requires them.
	res = questionnaires.ValidateQuestion(questionnaires.Question{
		ID: "q1", Text: "Q", Type: "multi-select",
	})
	assertInvalid(t, res, http.StatusBadRequest)
}

func TestValidateQuestionMissingID(t *testing.T) {
	res := questionnaires.ValidateQuestion(questionnaires.Question{Text: "Q", Type: "text"})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "ID")
}

func TestValidateQuestionDuplicateOptions(t *testing.T) {
	res := questionnaires.ValidateQuestion(questionnaires.Question{
		ID: "q1", Text: "Q", Type: "single-select", Options: []string{"a", "a"},
	})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "duplicate option 'a'")
}

func TestValidateQuestionTooManyOptions(t *testing.T) {
	options := make([]string, 11)
	for i := range options {
		options[i] = string(rune('a' + i))
	}

	res := questionnaires.ValidateQuestion(questionnaires.Question{
		ID: "q1", Text: "Q", Type: "multi-select", Options: options,
	})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "10 options")
}

func TestValidateQuestionBlankOption(t *testing.T) {
	res := questionnaires.ValidateQuestion(questionnaires.Question{
		ID: "q1", Text: "Q", Type: "single-select", Options: []string{"a", "  \t "},
	})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "empty text")
}

func TestValidateQuestionLongOption(t *testing.T) {
	res := questionnaires.ValidateQuestion(questionnaires.Question{
		ID: "q1", Text: "Q", Type: "single-select", Options: []string{strings.Repeat("x", 257)},
	})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "256 characters")
}

func TestValidateQuestionText(t *testing.T) {
	res := questionnaires.ValidateQuestion(textQuestion("q1", strings.Repeat("x", 257)))
	assertInvalid(t, res, http.StatusBadRequest)

	res = questionnaires.ValidateQuestion(textQuestion("q1", "   "))
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "empty titles")
}

// ============================================================================
// Questionnaire validation
// ============================================================================

func TestValidateQuestionnaireValid(t *testing.T) {
	res := questionnaires.ValidateQuestionnaire(questionnaires.QuestionnaireInput{
		Name:       strPtr("Survey"),
		Visibility: true,
		Questions:  []questionnaires.Question{textQuestion("q1", "Q1")},
	})
	assertValid(t, res)
}

func TestValidateQuestionnaireMissingFields(t *testing.T) {
	cases := map[string]questionnaires.QuestionnaireInput{
		"missing name": {
			Visibility: true,
			Questions:  []questionnaires.Question{textQuestion("q1", "Q1")},
		},
		"missing questions": {
			Name:       strPtr("Survey"),
			Visibility: true,
		},
		"missing visibility": {
			Name:      strPtr("Survey"),
			Questions: []questionnaires.Question{textQuestion("q1", "Q1")},
		},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			res := questionnaires.ValidateQuestionnaire(input)
			assertInvalid(t, res, http.StatusBadRequest)
			assertReasonContains(t, res, "Missing required parameter")
		})
	}
}

func TestValidateQuestionnaireNonBooleanVisibility(t *testing.T) {
	res := questionnaires.ValidateQuestionnaire(questionnaires.QuestionnaireInput{
		Name:       strPtr("Survey"),
		Visibility: "true",
		Questions:  []questionnaires.Question{textQuestion("q1", "Q1")},
	})
	assertInvalid(t, res, http.StatusBadRequest)
	assertReasonContains(t, res, "boolean")
}

func TestValidateQuestionnairePropagatesQuestionFailure(t *testing.T) {
	bad := questionnaires.Question{ID: "q2", Text: "Q2", Type: "single-select", Options: []string{"a", "a"}}

	res := questionnaires.ValidateQuestionnaire(questionnaires.QuestionnaireInput{
		Name:       strPtr("Survey"),
		Visibility: false,
		Questions:  []questionnaires.Question{textQuestion("q1", "Q1"), bad},
	})
	assertInvalid(t, res, http.StatusBadRequest)

	// The failing question's result comes through verbatim.
	if want := questionnaires.ValidateQuestion(bad); res != want {
		t.Errorf("result = %+v, want %+v", res, want)
	}
}

func TestQuestionRequiredDefault(t *testing.T) {
	if !textQuestion("q1", "Q1").IsRequired() {
		t.Error("questions should be required by default")
	}

	optional := questionnaires.Question{ID: "q1", Text: "Q1", Type: "text", Required: boolPtr(false)}
	if optional.IsRequired() {
		t.Error("required=false should make a question optional")
	}
}
