package questionnaires

// QuestionnaireInfo is one entry of the listing shown to a caller: their own
// questionnaires plus the shared public ones. Lock marks public questionnaires
// that already carry questions and so can no longer be edited.
type QuestionnaireInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Lock  bool   `json:"lock,omitempty"`
}

type CreateQuestionnaireResponse struct {
	ID string `json:"id"`
}
