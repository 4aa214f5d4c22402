package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	pkgAuth "github.com/cyna-app/commerce/internal/pkg/auth"
	"github.com/cyna-app/commerce/internal/test"
	"github.com/cyna-app/commerce/internal/usecase"
)

func newAuthUseCase(users *test.UserRepositoryStub) *usecase.AuthUseCase {
	return usecase.NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{
		IssueFn: func(identity model.Identity) (string, error) {
			return "token-for-user", nil
		},
	})
}

func TestAuthUseCase_Register(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users)

	user, token, err := uc.Register(context.Background(), "Ada", "Ada@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token != "token-for-user" {
		t.Fatalf("unexpected token: %s", token)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email must be normalized, got %s", user.Email)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.PasswordHash != "hash:s3cret" {
		t.Fatalf("unexpected hash: %s", user.PasswordHash)
	}
}

func TestAuthUseCase_RegisterRejectsBadInput(t *testing.T) {
	uc := newAuthUseCase(test.NewUserRepositoryStub())

	cases := []struct{ name, email, password string }{
		{"Ada", "", "pw"},
		{"Ada", "no-at-sign", "pw"},
		{"Ada", "a@b.c", ""},
	}
	for _, tc := range cases {
		if _, _, err := uc.Register(context.Background(), tc.name, tc.email, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("email %q: expected ErrInvalidCredentials, got %v", tc.email, err)
		}
	}
}

func TestAuthUseCase_RegisterDuplicate(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users)

	if _, _, err := uc.Register(context.Background(), "Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "Ada", "ada@example.com", "pw"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users)

	if _, _, err := uc.Register(context.Background(), "Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, token, err := uc.Authenticate(context.Background(), "ADA@example.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if token != "token-for-user" {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestAuthUseCase_AuthenticateWrongPassword(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := newAuthUseCase(users)

	if _, _, err := uc.Register(context.Background(), "Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUseCase_AuthenticateUnknownUser(t *testing.T) {
	uc := newAuthUseCase(test.NewUserRepositoryStub())
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "pw"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUseCase_ParseToken(t *testing.T) {
	uc := usecase.NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.StrategyStub{
		ParseFn: func(token string) (model.Identity, error) {
			if token != "valid" {
				return model.Identity{}, pkgAuth.ErrInvalidToken
			}
			return model.Identity{UserID: 9, Role: model.RoleAdmin}, nil
		},
	})

	identity, err := uc.ParseToken("valid")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if identity.UserID != 9 || !identity.IsAdmin() {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
}
