// Package token — кодек подписанных сессионных токенов.
// Формат: header.payload.signature, каждая часть — base64url без набивки,
// подпись — HMAC-SHA256 по строке "header.payload". Серверного
// состояния нет: проверка не требует хранилища сессий.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/example/kawa-b2b/internal/domain"
)

const minTTLSeconds = 60

var b64 = base64.RawURLEncoding

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Sign выпускает токен для сессии: проставляет iat и exp = iat + max(60, ttl).
func Sign(s domain.Session, secret string, ttlSeconds int64) string {
	return signAt(s, secret, ttlSeconds, time.Now().Unix())
}

func signAt(s domain.Session, secret string, ttlSeconds int64, now int64) string {
	if ttlSeconds < minTTLSeconds {
		ttlSeconds = minTTLSeconds
	}
	s.IssuedAt = now
	s.ExpiresAt = now + ttlSeconds

	h, _ := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	p, _ := json.Marshal(s)
	data := b64.EncodeToString(h) + "." + b64.EncodeToString(p)
	return data + "." + b64.EncodeToString(sign(data, secret))
}

// Verify разбирает и проверяет токен относительно текущего времени.
// Любой дефект формы, подписи или срока даёт (Session{}, false), паники нет.
func Verify(tok, secret string) (domain.Session, bool) {
	return VerifyAt(tok, secret, time.Now().Unix())
}

// VerifyAt — то же, но с явным моментом времени (unix-секунды).
func VerifyAt(tok, secret string, now int64) (domain.Session, bool) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return domain.Session{}, false
	}
	got, err := b64.DecodeString(parts[2])
	if err != nil {
		return domain.Session{}, false
	}
	if !hmac.Equal(got, sign(parts[0]+"."+parts[1], secret)) {
		return domain.Session{}, false
	}
	raw, err := b64.DecodeString(parts[1])
	if err != nil {
		return domain.Session{}, false
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.Session{}, false
	}
	if s.ExpiresAt != 0 && now > s.ExpiresAt {
		return domain.Session{}, false
	}
	return s, true
}

func sign(data, secret string) []byte {
	if secret == "" {
		secret = "dev-secret"
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
