package inputval

import (
	"strings"
	"testing"
)

type payload struct {
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Email  string `json:"email" validate:"omitempty,email"`
	Rating int    `json:"rating" validate:"min=0,max=5"`
}

func TestStruct_Valid(t *testing.T) {
	p := payload{Name: "Ada Lovelace", Email: "ada@example.com", Rating: 4}
	if err := Struct(p); err != nil {
		t.Errorf("Struct() = %v, want nil", err)
	}
}

func TestStruct_OmitemptySkipsBlankEmail(t *testing.T) {
	p := payload{Name: "Ada Lovelace"}
	if err := Struct(p); err != nil {
		t.Errorf("Struct() = %v, want nil", err)
	}
}

func TestStruct_MissingRequiredField(t *testing.T) {
	err := Struct(payload{Rating: 3})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}
	if !strings.Contains(err.Error(), "name (required)") {
		t.Errorf("error %q should name the missing field and tag", err)
	}
}

func TestStruct_BadEmail(t *testing.T) {
	err := Struct(payload{Name: "Ada", Email: "not-an-email"})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}
	if !strings.Contains(err.Error(), "email (email)") {
		t.Errorf("error %q should name the email field", err)
	}
}

func TestStruct_RangeViolation(t *testing.T) {
	err := Struct(payload{Name: "Ada", Rating: 6})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}
	if !strings.Contains(err.Error(), "rating (max)") {
		t.Errorf("error %q should name the rating field", err)
	}
}

func TestStruct_ListsEveryOffendingField(t *testing.T) {
	err := Struct(payload{Email: "nope", Rating: -1})
	if err == nil {
		t.Fatal("Struct() = nil, want error")
	}
	msg := err.Error()
	for _, part := range []string{"name (required)", "email (email)", "rating (min)"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error %q should contain %q", msg, part)
		}
	}
}
