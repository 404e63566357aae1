package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/vastra/pkg/validate"
)

type authInput struct {
	Token string `json:"token" validate:"required"`
	Role  string `json:"role"  validate:"nullable,in=user,admin"`
	Name  string `json:"name"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(authInput{Token: "abc", Role: "admin"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(authInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["token"]; !ok {
		t.Error("expected token to be required")
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	// Role absent: the in= rule must not fire.
	errs := validate.Struct(authInput{Token: "abc"})
	if validate.HasErrors(errs) {
		t.Errorf("expected nullable role to pass when empty, got: %v", errs)
	}
}

func TestInRuleMultiValue(t *testing.T) {
	if errs := validate.Struct(authInput{Token: "abc", Role: "root"}); !validate.HasErrors(errs) {
		t.Error("expected role outside the list to fail")
	}
	if errs := validate.Struct(authInput{Token: "abc", Role: "user"}); validate.HasErrors(errs) {
		t.Errorf("expected listed role to pass, got: %v", errs)
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

func TestNumericRules(t *testing.T) {
	type in struct {
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Quantity: -1}); !validate.HasErrors(errs) {
		t.Error("expected negative quantity to fail")
	}
	if errs := validate.Struct(in{Quantity: 2}); validate.HasErrors(errs) {
		t.Errorf("expected positive quantity to pass, got: %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); !validate.HasErrors(errs) {
		t.Error("expected too-short name to fail")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); !validate.HasErrors(errs) {
		t.Error("expected too-long name to fail")
	}
	if errs := validate.Struct(in{Name: "abc"}); validate.HasErrors(errs) {
		t.Errorf("expected in-bounds name to pass, got: %v", errs)
	}
}

func TestFieldNameComesFromJSONTag(t *testing.T) {
	type in struct {
		PaymentMethod string `json:"paymentMethod" validate:"required"`
	}
	errs := validate.Struct(in{})
	if _, ok := errs["paymentMethod"]; !ok {
		t.Errorf("expected error keyed by json name, got: %v", errs)
	}
}
