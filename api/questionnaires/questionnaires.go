package questionnaires

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/davidalade/quill/api/custom_errors"
	"github.com/davidalade/quill/api/jsonutil"
	"github.com/davidalade/quill/api/tokens"
	"github.com/davidalade/quill/queue"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	Store Store
	Queue queue.Queue
}

// UserID extracts the authenticated user id from the request, or "" for
// anonymous callers.
func UserID(request *http.Request) string {
	claims, ok := request.Context().Value("claims").(*tokens.Claims)
	if !ok {
		return ""
	}
	return claims.UserID
}

// WriteResult translates a failed validation or access result into the
// standard error envelope, untouched.
func WriteResult(responseWriter http.ResponseWriter, result Result) {
	response := jsonutil.Response{
		Status:  "error",
		Message: result.Reason,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, result.Code)
}

// ==================== Questionnaire Management Handlers ====================

func (h *Handler) CreateQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[QuestionnaireInput](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if len(data.Questions) == 0 {
		WriteResult(responseWriter, Invalid(http.StatusBadRequest, "Questionnaire must have one or more questions."))
		return
	}

	if data.ID != "" {
		exists, err := h.Store.QuestionnaireExists(ctx, data.ID)
		if err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: err.Error(),
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
			return
		}

		if exists {
			WriteResult(responseWriter, Invalid(http.StatusBadRequest, "Questionnaire already exists with id '%s'", data.ID))
			return
		}
	}

	qnrID := data.ID
	if qnrID == "" {
		qnrID, err = h.generateID(ctx)
		if err != nil {
			response := jsonutil.Response{
				Status:  "error",
				Message: err.Error(),
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
			return
		}
	}

	for i := range data.Questions {
		if data.Questions[i].ID == "" {
			data.Questions[i].ID = uuid.NewString()
		}
	}

	if res := ValidateQuestionnaire(data); !res.Valid {
		WriteResult(responseWriter, res)
		return
	}

	ownerID := UserID(request)
	if ownerID == "" {
		ownerID = PublicOwner
	}

	qnr := Questionnaire{
		ID:         qnrID,
		Name:       *data.Name,
		Visibility: data.Visibility.(bool),
		Questions:  data.Questions,
	}

	if err := h.Store.CreateQuestionnaire(ctx, qnr, ownerID); err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaire created successfully",
		Data:    CreateQuestionnaireResponse{ID: qnrID},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) GetQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	qnrID := chi.URLParam(request, "questionnaireID")

	qnr, err := h.Store.GetQuestionnaire(ctx, qnrID)
	if errors.Is(err, custom_errors.ErrNotFound) {
		WriteResult(responseWriter, Invalid(http.StatusNotFound, "No match for that ID."))
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

	// Private questionnaires are only served to callers the access rules
	// allow; public ones are open to any respondent.
	if !qnr.Visibility {
		own, err := h.Store.GetOwnership(ctx, qnrID)
		if err != nil {
			WriteResult(responseWriter, Invalid(http.StatusNotFound, "No match for that ID."))
			return
		}

		if res := CheckAccess(own.OwnerID, UserID(request), false); !res.Valid {
			WriteResult(responseWriter, res)
			return
		}
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaire retrieved successfully",
		Data:    qnr,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListQuestionnairesHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	items, err := h.Store.ListOwnership(ctx, UserID(request))
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	limit := -1
	if raw := request.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response := jsonutil.Response{
				Status:  "error",
				Message: "limit must be a non-negative integer",
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
			return
		}
	}

	info := make([]QuestionnaireInfo, 0, len(items))
	publicCount := 0
	for _, item := range items {
		entry := QuestionnaireInfo{
			ID:   item.QuestionnaireID,
			Name: item.Name,
		}

		if item.OwnerID == PublicOwner {
			if limit >= 0 {
				if publicCount >= limit {
					continue
				}
				publicCount++
			}

			entry.Owner = "public"
			entry.Lock = item.QuestionCount > 0
		} else {
			entry.Owner = "user"
		}

		info = append(info, entry)
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaires retrieved successfully",
		Data:    info,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	qnrID := chi.URLParam(request, "questionnaireID")

	data, err := jsonutil.UnmarshalJsonResponse[QuestionnaireInput](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if len(data.Questions) == 0 {
		WriteResult(responseWriter, Invalid(http.StatusBadRequest, "Questionnaire must have questions."))
		return
	}

	if data.Name != nil && *data.Name == DefaultName {
		WriteResult(responseWriter, Invalid(http.StatusBadRequest, "Questionnaire name must be changed from the default '%s'.", DefaultName))
		return
	}

	for i := range data.Questions {
		if data.Questions[i].ID == "" {
			data.Questions[i].ID = uuid.NewString()
		}
	}

	if res := ValidateQuestionnaire(data); !res.Valid {
		WriteResult(responseWriter, res)
		return
	}

	qnr := Questionnaire{
		ID:         qnrID,
		Name:       *data.Name,
		Visibility: data.Visibility.(bool),
		Questions:  data.Questions,
	}

	err = h.Store.UpdateQuestionnaire(ctx, qnr, UserID(request))
	if err != nil {
		h.writeStoreError(responseWriter, err, Invalid(http.StatusNotFound, "No questionnaire could be found with id '%s'", qnrID))
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaire updated successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteQuestionnaireHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	qnrID := chi.URLParam(request, "questionnaireID")

	err := h.Store.DeleteQuestionnaire(ctx, qnrID, UserID(request))
	if err != nil {
		h.writeStoreError(responseWriter, err, Invalid(http.StatusNotFound, "No questionnaire exists for that ID"))
		return
	}

	// Responses are purged out of band; the questionnaire itself is already
	// gone.
	purge := &queue.ResponsePurgePayload{QuestionnaireID: qnrID}
	if err := h.Queue.Enqueue(purge); err != nil {
		log.Printf("error enqueueing response purge for questionnaire %s: %v", qnrID, err)
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questionnaire deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// writeStoreError forwards access denials and validation failures from the
// store untouched, maps missing rows to the handler's not-found result, and
// treats everything else as an internal error.
func (h *Handler) writeStoreError(responseWriter http.ResponseWriter, err error, notFound Result) {
	var resultErr *ResultError
	if errors.As(err, &resultErr) {
		WriteResult(responseWriter, resultErr.Result)
		return
	}

	if errors.Is(err, custom_errors.ErrNotFound) {
		WriteResult(responseWriter, notFound)
		return
	}

	response := jsonutil.Response{
		Status:  "error",
		Message: err.Error(),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
}

// generateID draws random identifiers until one is free. Collisions are
// practically impossible with UUIDs but ids may also be caller-assigned, so
// each candidate is checked against storage anyway.
func (h *Handler) generateID(ctx context.Context) (string, error) {
	for {
		id := uuid.NewString()

		exists, err := h.Store.QuestionnaireExists(ctx, id)
		if err != nil {
			return "", err
		}

		if !exists {
			return id, nil
		}
	}
}
