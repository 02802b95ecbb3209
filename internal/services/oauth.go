package services

import (
	"context"
	"errors"
	"time"

	"genuka-bridge/internal/models"

	"github.com/sirupsen/logrus"
)

// CallbackStage стан обробки callback запиту
type CallbackStage string

const (
	StageReceived          CallbackStage = "RECEIVED"
	StageParamsChecked     CallbackStage = "PARAM_CHECKED"
	StageSignatureVerified CallbackStage = "SIGNATURE_VERIFIED"
	StageTimestampValid    CallbackStage = "TIMESTAMP_VALID"
	StageCodeExchanged     CallbackStage = "CODE_EXCHANGED"
	StageCompanyUpserted   CallbackStage = "TENANT_UPSERTED"
	StageSessionIssued     CallbackStage = "SESSION_ISSUED"
	StageRejected          CallbackStage = "REJECTED"
)

// OAuthOption налаштування OAuthService
type OAuthOption func(*oauthService)

// WithClock підміняє джерело поточного часу
func WithClock(now func() time.Time) OAuthOption {
	return func(s *oauthService) {
		if now != nil {
			s.now = now
		}
	}
}

// oauthService реалізація OAuthService
type oauthService struct {
	signatures SignatureService
	genuka     GenukaAPIService
	companies  CompanyService
	tolerance  time.Duration
	now        func() time.Time
}

// NewOAuthService створює новий OAuthService
func NewOAuthService(signatures SignatureService, genuka GenukaAPIService, companies CompanyService, tolerance time.Duration, opts ...OAuthOption) OAuthService {
	if tolerance <= 0 {
		tolerance = DefaultTimestampTolerance
	}
	s := &oauthService{
		signatures: signatures,
		genuka:     genuka,
		companies:  companies,
		tolerance:  tolerance,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateCallbackParams перевіряє наявність обов'язкових параметрів
func (s *oauthService) ValidateCallbackParams(req *models.CallbackRequest) error {
	values := map[string]string{
		"code":       req.Code,
		"company_id": req.CompanyID,
		"timestamp":  req.Timestamp,
		"hmac":       req.HMAC,
	}

	var missing []string
	for _, name := range RequiredCallbackParams {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return NewMissingParametersError(missing)
	}
	return nil
}

// HandleCallback проводить callback через усі стани до збереження компанії.
// Підпис і timestamp перевіряються до будь-якого мережевого запиту.
func (s *oauthService) HandleCallback(ctx context.Context, req *models.CallbackRequest) (*models.Company, error) {
	log := logrus.WithField("company_id", req.CompanyID)
	s.transition(log, StageReceived)

	if err := s.ValidateCallbackParams(req); err != nil {
		s.reject(log, StageReceived, err)
		return nil, err
	}
	s.transition(log, StageParamsChecked)

	params := CallbackParams(req.Code, req.CompanyID, req.RedirectTo, req.Timestamp)
	if !s.signatures.Verify(params, req.HMAC) {
		err := NewInvalidSignatureError(req.CompanyID)
		s.reject(log, StageParamsChecked, err)
		return nil, err
	}
	s.transition(log, StageSignatureVerified)

	if !IsFresh(req.Timestamp, s.tolerance, s.now()) {
		err := NewRequestExpiredError(req.CompanyID, req.Timestamp)
		s.reject(log, StageSignatureVerified, err)
		return nil, err
	}
	s.transition(log, StageTimestampValid)

	tokens, err := s.genuka.ExchangeCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	s.transition(log, StageCodeExchanged)

	info := s.genuka.GetCompanyInfo(ctx, req.CompanyID)
	expiresAt := tokens.ExpiresAt(s.now())

	company := &models.Company{
		ID:                req.CompanyID,
		Handle:            info.Handle,
		Name:              info.Name,
		Description:       info.Description,
		LogoURL:           info.LogoURL,
		Phone:             info.Metadata.Contact,
		AuthorizationCode: req.Code,
		AccessToken:       tokens.AccessToken,
		RefreshToken:      tokens.RefreshToken,
		TokenExpiresAt:    &expiresAt,
	}

	if err := s.companies.Upsert(ctx, company); err != nil {
		return nil, NewInternalError(err, "Internal server error")
	}
	s.transition(log, StageCompanyUpserted)

	log.WithField("token_expires_at", expiresAt).Info("OAuth callback processed successfully")
	return company, nil
}

// RefreshSession оновлює токени Genuka для компанії з refresh cookie
func (s *oauthService) RefreshSession(ctx context.Context, companyID string) (*models.Company, error) {
	log := logrus.WithField("company_id", companyID)

	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			log.Warn("Refresh requested for unknown company")
			return nil, NewCompanyNotFoundError(companyID)
		}
		return nil, NewInternalError(err, "Internal server error")
	}

	if !company.HasRefreshToken() {
		log.Warn("Company has no refresh token, reinstall required")
		return nil, NewNoRefreshTokenError(companyID)
	}

	tokens, err := s.genuka.RefreshAccessToken(ctx, company.RefreshToken)
	if err != nil {
		return nil, err
	}

	expiresAt := tokens.ExpiresAt(s.now())
	refreshToken := tokens.RefreshToken
	if refreshToken == "" {
		refreshToken = company.RefreshToken
	}

	updates := map[string]interface{}{
		"access_token":     tokens.AccessToken,
		"refresh_token":    refreshToken,
		"token_expires_at": expiresAt,
	}
	if err := s.companies.UpdateByID(ctx, companyID, updates); err != nil {
		return nil, NewInternalError(err, "Internal server error")
	}

	company.AccessToken = tokens.AccessToken
	company.RefreshToken = refreshToken
	company.TokenExpiresAt = &expiresAt

	log.WithField("token_expires_at", expiresAt).Info("Genuka tokens refreshed")
	return company, nil
}

// MarkSessionIssued фіксує фінальний стан callback після видачі cookie
func MarkSessionIssued(companyID string) {
	logrus.WithFields(logrus.Fields{
		"company_id": companyID,
		"stage":      StageSessionIssued,
	}).Debug("Callback stage reached")
}

func (s *oauthService) transition(log *logrus.Entry, stage CallbackStage) {
	log.WithField("stage", stage).Debug("Callback stage reached")
}

func (s *oauthService) reject(log *logrus.Entry, from CallbackStage, err error) {
	log.WithFields(logrus.Fields{
		"stage": StageRejected,
		"from":  from,
	}).WithError(err).Warn("OAuth callback rejected")
}
