package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SignatureService перевіряє HMAC підпис callback запитів від Genuka
type SignatureService interface {
	Sign(params map[string]string) string
	Verify(params map[string]string, signature string) bool
}

// signatureService реалізація SignatureService
type signatureService struct {
	secret []byte
}

// NewSignatureService створює новий сервіс підписів з client secret
func NewSignatureService(clientSecret string) SignatureService {
	return &signatureService{
		secret: []byte(clientSecret),
	}
}

// CallbackParams збирає набір параметрів, які підписує Genuka
func CallbackParams(code, companyID, redirectTo, timestamp string) map[string]string {
	return map[string]string{
		"code":        code,
		"company_id":  companyID,
		"redirect_to": redirectTo,
		"timestamp":   timestamp,
	}
}

// Sign обчислює HMAC-SHA256 над канонічним рядком параметрів
func (s *signatureService) Sign(params map[string]string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(CanonicalQuery(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify порівнює підпис за постійний час
func (s *signatureService) Verify(params map[string]string, signature string) bool {
	if signature == "" {
		return false
	}
	expected := s.Sign(params)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// CanonicalQuery будує рядок key=value&... з відсортованими ключами.
// Ключі та значення кодуються за RFC 3986 рівно один раз.
func CanonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(rawURLEncode(k))
		b.WriteByte('=')
		b.WriteString(rawURLEncode(params[k]))
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

// rawURLEncode кодує все крім unreserved символів як %XX (пробіл стає %20)
func rawURLEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
