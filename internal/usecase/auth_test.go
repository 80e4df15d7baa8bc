package usecase

import (
	"errors"
	"testing"

	"github.com/example/kawa-b2b/internal/domain"
)

func testAuth() AuthConfig {
	return AuthConfig{
		Secret:     "test-secret",
		TTLSeconds: 3600,
		DemoCode:   "0000",
		DemoEmail:  "demo@kawa.by",
		DemoPass:   "demo123",
	}
}

func TestStartLoginEmailShape(t *testing.T) {
	uc := StartLogin{Auth: testAuth()}

	if _, err := uc.Execute("not-an-email"); !errors.Is(err, domain.ErrBadEmail) {
		t.Errorf("err = %v, want ErrBadEmail", err)
	}
	if _, err := uc.Execute("a@b"); !errors.Is(err, domain.ErrBadEmail) {
		t.Errorf("err = %v, want ErrBadEmail for missing dot", err)
	}

	code, err := uc.Execute("a@b.com")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if code != "0000" {
		t.Errorf("code = %q", code)
	}
}

func TestVerifyCode(t *testing.T) {
	auth := testAuth()

	if _, err := (VerifyCode{Auth: auth}).Execute("a@b.com", "9999"); !errors.Is(err, domain.ErrInvalidChallenge) {
		t.Errorf("err = %v, want ErrInvalidChallenge", err)
	}

	tok, err := (VerifyCode{Auth: auth}).Execute("a@b.com", "0000")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	s, ok := (CurrentSession{Auth: auth}).Execute(tok)
	if !ok {
		t.Fatal("issued token did not verify")
	}
	if s.Email != "a@b.com" || s.Subject != "email:a@b.com" {
		t.Errorf("session = %+v", s)
	}
}

func TestPasswordLogin(t *testing.T) {
	auth := testAuth()

	if _, _, err := (PasswordLogin{Auth: auth}).Execute("demo@kawa.by", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := (PasswordLogin{Auth: auth}).Execute("other@kawa.by", "demo123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	tok, s, err := (PasswordLogin{Auth: auth}).Execute("demo@kawa.by", "demo123")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if s.Email != "demo@kawa.by" {
		t.Errorf("session = %+v", s)
	}
	if _, ok := (CurrentSession{Auth: auth}).Execute(tok); !ok {
		t.Error("issued token did not verify")
	}
}

func TestCurrentSessionGarbage(t *testing.T) {
	uc := CurrentSession{Auth: testAuth()}
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, ok := uc.Execute(tok); ok {
			t.Errorf("Execute(%q) accepted garbage", tok)
		}
	}
}
