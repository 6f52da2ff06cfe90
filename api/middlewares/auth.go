package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/davidalade/quill/api/jsonutil"
	"github.com/davidalade/quill/api/tokens"
)

func AuthMiddleware(tokenService tokens.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "authorization header required",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			tokenString := strings.Split(authHeader, " ")

			if len(tokenString) != 2 || tokenString[0] != "Bearer" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid authorization header format",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			data, err := tokenService.DecodeToken(tokenString[1])
			if err != nil {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid or expired token",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(request.Context(), "claims", data)

			newRequest := request.WithContext(ctx)
			next.ServeHTTP(responseWriter, newRequest)
		})
	}
}

// OptionalAuthMiddleware decodes a bearer token when one is supplied but lets
// anonymous requests through. A present but invalid token is still rejected so
// a caller can never silently fall back to anonymous.
func OptionalAuthMiddleware(tokenService tokens.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(responseWriter, request)
				return
			}

			tokenString := strings.Split(authHeader, " ")

			if len(tokenString) != 2 || tokenString[0] != "Bearer" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid authorization header format",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			data, err := tokenService.DecodeToken(tokenString[1])
			if err != nil {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid or expired token",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(request.Context(), "claims", data)

			newRequest := request.WithContext(ctx)
			next.ServeHTTP(responseWriter, newRequest)
		})
	}
}
