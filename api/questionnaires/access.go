package questionnaires

import "net/http"

// CheckAccess decides whether userID may read or edit the questionnaire whose
// ownership record is given. It is a pure capability check: it never mutates
// state and must be recomputed from current ownership on every request.
//
// Read access: allowed for the owner and for anyone when the questionnaire is
// owned by the anonymous-public sentinel. An unauthorized read reports 404
// rather than 401 so existence is not confirmed to callers who cannot see the
// questionnaire.
//
// Edit access: sentinel-owned questionnaires are immutable once published, and
// only the owner may edit the rest.
func CheckAccess(ownerID, userID string, forEdit bool) Result {
	if forEdit {
		if ownerID == PublicOwner {
			return Invalid(http.StatusUnauthorized, "Public questionnaires cannot be edited")
		}

		if ownerID != userID {
			return Invalid(http.StatusUnauthorized, "User does not have access")
		}

		return OK()
	}

	if ownerID == PublicOwner || ownerID == userID {
		return OK()
	}

	return Invalid(http.StatusNotFound, "Questionnaire could not be found")
}
