package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/davidalade/quill/api/custom_errors"
	"github.com/davidalade/quill/api/jsonutil"
	"github.com/davidalade/quill/api/tokens"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

type Handler struct {
	Store  Store
	Token  tokens.TokenService
	Google GoogleVerifier
}

// GoogleVerifier checks a Google ID token and extracts the verified subject
// and email.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (subject, email string, err error)
}

type googleVerifier struct{}

func NewGoogleVerifier() GoogleVerifier {
	return &googleVerifier{}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (string, string, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return "", "", errors.New("GOOGLE_CLIENT_ID environment variable not set")
	}

	payload, err := idtoken.Validate(ctx, token, clientID)
	if err != nil {
		return "", "", fmt.Errorf("error validating google id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)

	return payload.Subject, email, nil
}

func (h *Handler) RegisterUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[CreateUserBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.Password), 10)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	user, err := h.Store.CreateUser(ctx, data.Email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, custom_errors.ErrConflict) {
			response := jsonutil.Response{
				Status:  "error",
				Message: err.Error(),
			}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusConflict)
			return
		}

		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	accessToken, refreshToken := h.Token.GenerateToken(user.ID, user.Email.String)

	response := jsonutil.Response{
		Status:  "success",
		Message: "user created successfully",
		Data: TokenResponse{
			User:         UserResponse{ID: user.ID, Email: user.Email.String},
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) LoginUserHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[LoginUserBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	user, err := h.Store.GetUserByEmail(ctx, data.Email)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrUnauthorized.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	if !h.Token.ComparePasswords(user.Password.String, data.Password) {
		response := jsonutil.Response{
			Status:  "error",
			Message: custom_errors.ErrUnauthorized.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	accessToken, refreshToken := h.Token.GenerateToken(user.ID, user.Email.String)

	response := jsonutil.Response{
		Status:  "success",
		Message: "user logged in successfully",
		Data: TokenResponse{
			User:         UserResponse{ID: user.ID, Email: user.Email.String},
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) GoogleLoginHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	data, err := jsonutil.UnmarshalJsonResponse[GoogleLoginBody](request)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	subject, email, err := h.Google.Verify(ctx, data.IDToken)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: "invalid google id token",
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	user, err := h.Store.UpsertGoogleUser(ctx, subject, email)
	if err != nil {
		response := jsonutil.Response{
			Status:  "error",
			Message: err.Error(),
		}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusInternalServerError)
		return
	}

	accessToken, refreshToken := h.Token.GenerateToken(user.ID, user.Email.String)

	response := jsonutil.Response{
		Status:  "success",
		Message: "user logged in successfully",
		Data: TokenResponse{
			User:         UserResponse{ID: user.ID, Email: user.Email.String},
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}
