package usecase

import (
	"github.com/example/kawa-b2b/internal/domain"
	"github.com/example/kawa-b2b/internal/token"
)

// AuthConfig — общие параметры демо-входа. Код и пара логин/пароль
// фиксированные: это заглушка под «код из письма», не боевая схема.
type AuthConfig struct {
	Secret     string
	TTLSeconds int64
	DemoCode   string
	DemoEmail  string
	DemoPass   string
}

// StartLogin — первый шаг OTP-входа: проверка формы почты и выдача
// кода. Код возвращается вызывающему — демо-срезка вместо письма.
type StartLogin struct {
	Auth AuthConfig
}

func (uc StartLogin) Execute(email string) (string, error) {
	if !domain.ValidEmail(email) {
		return "", domain.ErrBadEmail
	}
	return uc.Auth.DemoCode, nil
}

// VerifyCode — второй шаг: сверка кода и выпуск сессионного токена.
// Несовпадение не раскрывает, «известна» ли почта.
type VerifyCode struct {
	Auth AuthConfig
}

func (uc VerifyCode) Execute(email, code string) (string, error) {
	if !domain.ValidEmail(email) {
		return "", domain.ErrBadEmail
	}
	if code != uc.Auth.DemoCode {
		return "", domain.ErrInvalidChallenge
	}
	s := domain.Session{Subject: "email:" + email, Email: email}
	return token.Sign(s, uc.Auth.Secret, uc.Auth.TTLSeconds), nil
}

// PasswordLogin — прямой вход по фиксированной паре.
type PasswordLogin struct {
	Auth AuthConfig
}

func (uc PasswordLogin) Execute(email, password string) (string, domain.Session, error) {
	if email != uc.Auth.DemoEmail || password != uc.Auth.DemoPass {
		return "", domain.Session{}, domain.ErrInvalidCredentials
	}
	s := domain.Session{Subject: "1", Email: email}
	return token.Sign(s, uc.Auth.Secret, uc.Auth.TTLSeconds), s, nil
}

// CurrentSession — личность из токена в cookie запроса.
type CurrentSession struct {
	Auth AuthConfig
}

func (uc CurrentSession) Execute(tok string) (domain.Session, bool) {
	if tok == "" {
		return domain.Session{}, false
	}
	return token.Verify(tok, uc.Auth.Secret)
}
