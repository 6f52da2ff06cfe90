package questionnaires

// PublicOwner is the shared owner recorded for questionnaires created without
// authentication. Anyone may read them; nobody may edit them once published.
const PublicOwner = "anonymous-public-owner"

// DefaultName is the placeholder the editor starts from. Updates are rejected
// until it has been changed.
const DefaultName = "Untitled Questionnaire"

type QuestionType struct {
	ID            string
	HasOptions    bool
	UniqueOptions bool
	IsNumber      bool
}

// The four supported question kinds. This table is the single source of truth
// for which kinds exist and what they require.
var questionTypes = []QuestionType{
	{ID: "text"},
	{ID: "number", IsNumber: true},
	{ID: "single-select", HasOptions: true, UniqueOptions: true},
	{ID: "multi-select", HasOptions: true},
}

// TypeOf resolves a question type by its identifier.
func TypeOf(id string) (QuestionType, bool) {
	for _, t := range questionTypes {
		if t.ID == id {
			return t, true
		}
	}
	return QuestionType{}, false
}

// QuestionTypeIDs lists the identifiers of every supported question kind.
func QuestionTypeIDs() []string {
	ids := make([]string, 0, len(questionTypes))
	for _, t := range questionTypes {
		ids = append(ids, t.ID)
	}
	return ids
}

type Question struct {
	ID       string   `json:"id,omitempty"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required *bool    `json:"required,omitempty"`
}

// IsRequired reports whether an answer must be given. Questions are required
// unless explicitly marked otherwise.
func (q Question) IsRequired() bool {
	return q.Required == nil || *q.Required
}

type Questionnaire struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Visibility bool       `json:"visibility"`
	Questions  []Question `json:"questions"`
}

// Ownership is the owner/visibility record access decisions are made from.
type Ownership struct {
	QuestionnaireID string
	Name            string
	Visibility      bool
	OwnerID         string
	QuestionCount   int
}
