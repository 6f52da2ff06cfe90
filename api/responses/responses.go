package responses

import (
	"errors"
	"net/http"

	"github.com/davidalade/quill/api/custom_errors"
	"github.com/davidalade/quill/api/jsonutil"
	"github.com/davidalade/quill/api/questionnaires"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Store              Store
	QuestionnaireStore questionnaires.Store
}

func (h *Handler) CreateResponseHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	qnrID := chi.URLParam(request, "questionnaireID")

	data, err := jsonutil.UnmarshalJsonResponse[map[string]any](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	var questionnaire *questionnaires.Questionnaire

	qnr, err := h.QuestionnaireStore.GetQuestionnaire(ctx, qnrID)
	if err == nil {
		questionnaire = &qnr
	} else if !errors.Is(err, custom_errors.ErrNotFound) {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if res := ValidateQNRResponse(data, questionnaire); !res.Valid {
		questionnaires.WriteResult(responseWriter, res)
		return
	}

	if err := h.Store.CreateResponse(ctx, qnrID, data); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "response recorded successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetResponsesHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	qnrID := chi.URLParam(request, "questionnaireID")

	// Access is recomputed from current ownership on every request; results
	// of private questionnaires are only served to their owner.
	own, err := h.QuestionnaireStore.GetOwnership(ctx, qnrID)
	if errors.Is(err, custom_errors.ErrNotFound) {
		questionnaires.WriteResult(responseWriter, questionnaires.Invalid(http.StatusNotFound, "Questionnaire could not be found"))
		return
	}
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	if res := questionnaires.CheckAccess(own.OwnerID, questionnaires.UserID(request), false); !res.Valid {
		questionnaires.WriteResult(responseWriter, res)
		return
	}

	items, err := h.Store.ListResponses(ctx, qnrID)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "responses retrieved successfully",
		Data:    items,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
