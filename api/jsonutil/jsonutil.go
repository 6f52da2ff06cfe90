package jsonutil

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func WriteJSONResponse(responseWriter http.ResponseWriter, response any, code int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(code)

	if err := json.NewEncoder(responseWriter).Encode(response); err != nil {
		log.Printf("error encoding json response: %v", err)
	}
}

// UnmarshalJsonResponse decodes the request body into T and checks the
// struct's validate tags.
func UnmarshalJsonResponse[T any](request *http.Request) (T, error) {
	var data T

	if err := json.NewDecoder(request.Body).Decode(&data); err != nil {
		return data, fmt.Errorf("error decoding request body: %w", err)
	}

	// Free-form bodies (maps) carry no validate tags.
	if reflect.ValueOf(data).Kind() == reflect.Struct {
		if err := validate.Struct(data); err != nil {
			return data, fmt.Errorf("invalid request body: %w", err)
		}
	}

	return data, nil
}
