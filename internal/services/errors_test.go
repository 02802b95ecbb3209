package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsServiceErrorKeepsRichErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		textCode string
	}{
		{"missing params", NewMissingParametersError([]string{"code"}), http.StatusBadRequest, ErrorCodeMissingParameters},
		{"signature", NewInvalidSignatureError("c1"), http.StatusBadRequest, ErrorCodeInvalidSignature},
		{"expired", NewRequestExpiredError("c1", "1"), http.StatusBadRequest, ErrorCodeRequestExpired},
		{"not found", NewCompanyNotFoundError("c1"), http.StatusNotFound, ErrorCodeCompanyNotFound},
		{"no refresh", NewNoRefreshTokenError("c1"), http.StatusUnauthorized, ErrorCodeNoRefreshToken},
		{"refresh invalid", NewRefreshTokenInvalidError(), http.StatusUnauthorized, ErrorCodeRefreshTokenInvalid},
		{"unauthorized", NewUnauthorizedError(), http.StatusUnauthorized, ErrorCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rich := AsServiceError(tt.err)
			require.Equal(t, tt.status, rich.Code)
			require.Equal(t, tt.textCode, rich.TextCode)
		})
	}
}

func TestAsServiceErrorWrapsPlainErrors(t *testing.T) {
	rich := AsServiceError(errors.New("db down"))
	require.Equal(t, http.StatusInternalServerError, rich.Code)
	require.Equal(t, ErrorCodeInternal, rich.TextCode)
	require.Equal(t, "Internal server error", rich.Message)

	rich = AsServiceError(fmt.Errorf("lookup: %w", ErrCompanyNotFound))
	require.Equal(t, http.StatusNotFound, rich.Code)

	require.Nil(t, AsServiceError(nil))
}
