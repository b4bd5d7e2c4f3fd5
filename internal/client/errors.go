package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	graphql "github.com/hasura/go-graphql-client"
)

const maxErrorBodyLen = 200

// APIError is a failure reported by the backend. StatusCode is the HTTP
// status for non-200 responses and zero for GraphQL errors served with 200.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode == 0 {
		return "api error: " + e.Message
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// wrapError folds GraphQL and HTTP status failures into *APIError. Context
// cancellation and dial failures stay wrapped so errors.Is still sees them.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) || len(gqlErrs) == 0 {
		return fmt.Errorf("graphql transport: %w", err)
	}
	messages := make([]string, 0, len(gqlErrs))
	for _, gqlErr := range gqlErrs {
		cause := gqlErr.Unwrap()
		if cause == nil {
			messages = append(messages, gqlErr.Message)
			continue
		}
		if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
			return fmt.Errorf("graphql transport: %w", cause)
		}
		var netErr graphql.NetworkError
		if errors.As(cause, &netErr) {
			return &APIError{StatusCode: netErr.StatusCode(), Message: networkErrorMessage(netErr)}
		}
		if gqlErr.Extensions["code"] == graphql.ErrRequestError {
			return fmt.Errorf("graphql transport: %w", cause)
		}
		messages = append(messages, gqlErr.Message)
	}
	return &APIError{Message: strings.Join(messages, "; ")}
}

func networkErrorMessage(err graphql.NetworkError) string {
	body := strings.TrimSpace(err.Body())
	if body == "" {
		return http.StatusText(err.StatusCode())
	}
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "…"
	}
	return body
}
