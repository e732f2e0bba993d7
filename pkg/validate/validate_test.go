package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/validate"
)

type signupInput struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"     validate:"required,max=255"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Email:    "lora@example.com",
		Password: "secret",
		Name:     "Lora Palmer",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"email", "password", "name"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestBlankStringIsEmpty(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}
	if errs := validate.Struct(in{Name: "   "}); !validate.HasErrors(errs) {
		t.Error("expected blank name to fail")
	}
}

func TestPasswordTooShort(t *testing.T) {
	errs := validate.Struct(signupInput{Email: "a@b.co", Password: "pw", Name: "x"})
	msgs, ok := errs["password"]
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one password error, got: %v", errs)
	}
	if msgs[0] != "The password must be at least 5 characters." {
		t.Errorf("unexpected message %q", msgs[0])
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestPointerFields(t *testing.T) {
	type in struct {
		Name     *string `json:"name"     validate:"nullable,max=3"`
		Password *string `json:"password" validate:"nullable,min=5"`
	}
	long, short := "abcdef", "pw"

	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("expected nil pointers to be skipped, got: %v", errs)
	}
	errs := validate.Struct(in{Name: &long, Password: &short})
	if _, ok := errs["name"]; !ok {
		t.Error("expected name max error")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password min error")
	}
}

func TestCheckWrapsValidationError(t *testing.T) {
	err := validate.Check(signupInput{})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", err)
	}
	if validate.Check(signupInput{Email: "a@b.co", Password: "12345", Name: "n"}) != nil {
		t.Error("expected nil for valid input")
	}
}
