package services

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Текстові коди помилок, які бачить клієнт
const (
	ErrorCodeMissingParameters   = "MISSING_PARAMETERS"
	ErrorCodeInvalidSignature    = "INVALID_SIGNATURE"
	ErrorCodeRequestExpired      = "REQUEST_EXPIRED"
	ErrorCodeExchangeFailed      = "EXCHANGE_FAILED"
	ErrorCodeRefreshFailed       = "REFRESH_FAILED"
	ErrorCodeUpstreamFailed      = "UPSTREAM_FAILED"
	ErrorCodeCompanyNotFound     = "COMPANY_NOT_FOUND"
	ErrorCodeNoRefreshToken      = "NO_REFRESH_TOKEN"
	ErrorCodeRefreshTokenInvalid = "REFRESH_TOKEN_INVALID"
	ErrorCodeUnauthorized        = "UNAUTHORIZED"
	ErrorCodeUnknownEvent        = "UNKNOWN_EVENT"
	ErrorCodeInternal            = "INTERNAL_ERROR"
)

// ErrCompanyNotFound повертається сховищем коли компанії з таким ID немає
var ErrCompanyNotFound = errors.New("company not found")

// RequiredCallbackParams список обов'язкових параметрів callback запиту
var RequiredCallbackParams = []string{"code", "company_id", "timestamp", "hmac"}

func serviceError(message string, category goerrors.Category, code int, textCode string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func serviceWrapError(source error, category goerrors.Category, message string, code int, textCode string, metadata map[string]any) *goerrors.Error {
	if source == nil {
		return serviceError(message, category, code, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// NewMissingParametersError помилка валідації callback параметрів
func NewMissingParametersError(missing []string) error {
	return serviceError(
		"Missing required parameters",
		goerrors.CategoryBadInput,
		http.StatusBadRequest,
		ErrorCodeMissingParameters,
		map[string]any{"missing": missing, "stage": string(StageReceived)},
	)
}

// NewInvalidSignatureError помилка перевірки HMAC підпису
func NewInvalidSignatureError(companyID string) error {
	return serviceError(
		"Invalid HMAC signature",
		goerrors.CategoryAuth,
		http.StatusBadRequest,
		ErrorCodeInvalidSignature,
		map[string]any{"company_id": companyID, "stage": string(StageParamsChecked)},
	)
}

// NewRequestExpiredError помилка застарілого timestamp
func NewRequestExpiredError(companyID, timestamp string) error {
	return serviceError(
		"Request expired",
		goerrors.CategoryAuth,
		http.StatusBadRequest,
		ErrorCodeRequestExpired,
		map[string]any{"company_id": companyID, "timestamp": timestamp, "stage": string(StageSignatureVerified)},
	)
}

// NewExchangeFailedError помилка обміну authorization code на токени
func NewExchangeFailedError(cause error, status int, body string) error {
	return serviceWrapError(
		cause,
		goerrors.CategoryOperation,
		"Failed to exchange authorization code",
		http.StatusInternalServerError,
		ErrorCodeExchangeFailed,
		map[string]any{"upstream_status": status, "upstream_body": body},
	)
}

// NewRefreshFailedError помилка оновлення access token у провайдера
func NewRefreshFailedError(cause error, status int, body string) error {
	return serviceWrapError(
		cause,
		goerrors.CategoryAuth,
		"Failed to refresh session. Please reinstall the app.",
		http.StatusUnauthorized,
		ErrorCodeRefreshFailed,
		map[string]any{"upstream_status": status, "upstream_body": body},
	)
}

// NewUpstreamError помилка довільного запиту до Genuka API
func NewUpstreamError(cause error, endpoint string, status int) error {
	return serviceWrapError(
		cause,
		goerrors.CategoryOperation,
		"Genuka API request failed",
		http.StatusBadGateway,
		ErrorCodeUpstreamFailed,
		map[string]any{"endpoint": endpoint, "upstream_status": status},
	)
}

// NewCompanyNotFoundError компанію не знайдено
func NewCompanyNotFoundError(companyID string) error {
	return serviceWrapError(
		ErrCompanyNotFound,
		goerrors.CategoryNotFound,
		"Company not found",
		http.StatusNotFound,
		ErrorCodeCompanyNotFound,
		map[string]any{"company_id": companyID},
	)
}

// NewNoRefreshTokenError у компанії немає refresh token, потрібна перевстановка
func NewNoRefreshTokenError(companyID string) error {
	return serviceError(
		"No refresh token available. Please reinstall the app.",
		goerrors.CategoryAuth,
		http.StatusUnauthorized,
		ErrorCodeNoRefreshToken,
		map[string]any{"company_id": companyID},
	)
}

// NewRefreshTokenInvalidError refresh cookie відсутній або недійсний
func NewRefreshTokenInvalidError() error {
	return serviceError(
		"Invalid or expired refresh token",
		goerrors.CategoryAuth,
		http.StatusUnauthorized,
		ErrorCodeRefreshTokenInvalid,
		nil,
	)
}

// NewUnauthorizedError сесійний cookie відсутній або недійсний
func NewUnauthorizedError() error {
	return serviceError(
		"Not authenticated",
		goerrors.CategoryAuth,
		http.StatusUnauthorized,
		ErrorCodeUnauthorized,
		nil,
	)
}

// NewUnknownEventError спроба зареєструвати обробник для невідомого типу події
func NewUnknownEventError(eventType string) error {
	return serviceError(
		"Unknown webhook event type",
		goerrors.CategoryBadInput,
		http.StatusBadRequest,
		ErrorCodeUnknownEvent,
		map[string]any{"event_type": eventType},
	)
}

// NewInternalError обгортає неочікувану помилку
func NewInternalError(cause error, message string) error {
	return serviceWrapError(
		cause,
		goerrors.CategoryInternal,
		message,
		http.StatusInternalServerError,
		ErrorCodeInternal,
		nil,
	)
}

// AsServiceError приводить будь-яку помилку до *goerrors.Error з HTTP кодом
func AsServiceError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if richErr.Code == 0 {
			richErr.WithCode(statusForCategory(richErr.Category))
		}
		if richErr.TextCode == "" {
			richErr.WithTextCode(ErrorCodeInternal)
		}
		return richErr
	}

	if errors.Is(err, ErrCompanyNotFound) {
		return NewCompanyNotFoundError("").(*goerrors.Error)
	}

	return NewInternalError(err, "Internal server error").(*goerrors.Error)
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HasTextCode перевіряє текстовий код помилки
func HasTextCode(err error, textCode string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}
