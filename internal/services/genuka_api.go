package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"genuka-bridge/internal/build"
	"genuka-bridge/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	// DefaultExpiresInMinutes використовується коли Genuka не повертає expires_in_minutes
	DefaultExpiresInMinutes = 60

	defaultRequestTimeout = 30 * time.Second
	maxErrorBodyBytes     = 4096
)

// GenukaAPIService інтерфейс для роботи з Genuka API
type GenukaAPIService interface {
	ExchangeCode(ctx context.Context, code string) (*models.ProviderTokens, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*models.ProviderTokens, error)
	GetCompanyInfo(ctx context.Context, companyID string) *models.CompanyInfo
	Get(ctx context.Context, endpoint, accessToken string, out interface{}) error
	Post(ctx context.Context, endpoint, accessToken string, body, out interface{}) error
}

// GenukaClientConfig параметри клієнта Genuka API
type GenukaClientConfig struct {
	BaseURL            string
	ClientID           string
	ClientSecret       string
	RedirectURI        string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// genukaAPIService реалізація GenukaAPIService
type genukaAPIService struct {
	baseURL    string
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewGenukaAPIService створює новий клієнт Genuka API
func NewGenukaAPIService(cfg GenukaClientConfig) GenukaAPIService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	httpClient := &http.Client{
		Timeout: timeout,
	}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &genukaAPIService{
		baseURL: baseURL,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				TokenURL:  baseURL + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// ExchangeCode обмінює authorization code на токени Genuka
func (g *genukaAPIService) ExchangeCode(ctx context.Context, code string) (*models.ProviderTokens, error) {
	logrus.WithFields(logrus.Fields{
		"code":      mask(code),
		"token_url": g.oauth.Endpoint.TokenURL,
	}).Info("Exchanging authorization code for tokens")

	tok, err := g.oauth.Exchange(g.withClient(ctx), code)
	if err != nil {
		status, body := upstreamDetails(err)
		logrus.WithFields(logrus.Fields{
			"status_code": status,
			"response":    body,
		}).WithError(err).Error("Genuka token exchange failed")
		return nil, NewExchangeFailedError(err, status, body)
	}

	tokens := toProviderTokens(tok)
	logrus.WithFields(logrus.Fields{
		"token_type":         tokens.TokenType,
		"expires_in_minutes": tokens.ExpiresInMinutes,
		"has_refresh_token":  tokens.RefreshToken != "",
	}).Info("Successfully received tokens from Genuka")

	return tokens, nil
}

// RefreshAccessToken отримує новий access token за refresh token.
// Якщо Genuka не повертає новий refresh token, зберігається попередній.
func (g *genukaAPIService) RefreshAccessToken(ctx context.Context, refreshToken string) (*models.ProviderTokens, error) {
	logrus.WithField("token_url", g.oauth.Endpoint.TokenURL).Info("Refreshing Genuka access token")

	src := g.oauth.TokenSource(g.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		status, body := upstreamDetails(err)
		logrus.WithFields(logrus.Fields{
			"status_code": status,
			"response":    body,
		}).WithError(err).Error("Genuka token refresh failed")
		return nil, NewRefreshFailedError(err, status, body)
	}

	tokens := toProviderTokens(tok)
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

// GetCompanyInfo отримує інформацію про компанію. Ніколи не повертає помилку:
// при будь-якій невдачі повертається мінімальна інформація з назвою "Company <id>".
func (g *genukaAPIService) GetCompanyInfo(ctx context.Context, companyID string) *models.CompanyInfo {
	fallback := &models.CompanyInfo{
		ID:   companyID,
		Name: fmt.Sprintf("Company %s", companyID),
	}

	endpoint := g.baseURL + "/companies/" + url.PathEscape(companyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create company info request")
		return fallback
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", build.UserAgent())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("company_id", companyID).Warn("Company info request failed, using fallback")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"company_id":  companyID,
			"status_code": resp.StatusCode,
		}).Warn("Genuka returned error for company info, using fallback")
		return fallback
	}

	var info models.CompanyInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		logrus.WithError(err).WithField("company_id", companyID).Warn("Failed to decode company info, using fallback")
		return fallback
	}
	if info.ID == "" {
		info.ID = companyID
	}

	return &info
}

// Get виконує автентифікований GET запит до Genuka API
func (g *genukaAPIService) Get(ctx context.Context, endpoint, accessToken string, out interface{}) error {
	return g.do(ctx, http.MethodGet, endpoint, accessToken, nil, out)
}

// Post виконує автентифікований POST запит до Genuka API
func (g *genukaAPIService) Post(ctx context.Context, endpoint, accessToken string, body, out interface{}) error {
	return g.do(ctx, http.MethodPost, endpoint, accessToken, body, out)
}

func (g *genukaAPIService) do(ctx context.Context, method, endpoint, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NewInternalError(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, reader)
	if err != nil {
		return NewUpstreamError(err, endpoint, 0)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", build.UserAgent())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return NewUpstreamError(err, endpoint, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logrus.WithFields(logrus.Fields{
			"method":      method,
			"endpoint":    endpoint,
			"status_code": resp.StatusCode,
			"response":    string(respBody),
		}).Error("Genuka API returned error")
		return NewUpstreamError(fmt.Errorf("unexpected status %d", resp.StatusCode), endpoint, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewUpstreamError(err, endpoint, resp.StatusCode)
	}
	return nil
}

func (g *genukaAPIService) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

func toProviderTokens(tok *oauth2.Token) *models.ProviderTokens {
	return &models.ProviderTokens{
		AccessToken:      tok.AccessToken,
		RefreshToken:     tok.RefreshToken,
		TokenType:        tok.TokenType,
		ExpiresInMinutes: expiresInMinutes(tok.Extra("expires_in_minutes")),
	}
}

// expiresInMinutes читає expires_in_minutes з JSON або form відповіді
func expiresInMinutes(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int64:
		if v > 0 {
			return int(v)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n > 0 {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultExpiresInMinutes
}

func upstreamDetails(err error) (int, string) {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		body := retrieveErr.Body
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return status, string(body)
	}
	return 0, ""
}

// mask залишає лише початок секретного значення для логів
func mask(value string) string {
	if len(value) <= 6 {
		return "***"
	}
	return value[:6] + "..."
}
