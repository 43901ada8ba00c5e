package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"081234567890", "+6281234567890", "+1 415-555-0100", "0044 20 7946 0958"}
	invalid := []string{"12345", "0812345678901234567", "abc0812345678", "0812345678a", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	got, ok := ParseYearMonth("2026-03")
	if !ok || got.Year() != 2026 || got.Month() != 3 {
		t.Errorf("ParseYearMonth(2026-03) = %v, %v", got, ok)
	}
	if _, ok := ParseYearMonth("2026-3-1"); ok {
		t.Errorf("ParseYearMonth(2026-3-1) = ok, want failure")
	}
}

func TestOptionalInt(t *testing.T) {
	n, err := OptionalInt("months", "", 12, 1, 36)
	if err != nil || n != 12 {
		t.Errorf("OptionalInt(empty) = %d, %v; want 12, nil", n, err)
	}
	n, err = OptionalInt("months", "6", 12, 1, 36)
	if err != nil || n != 6 {
		t.Errorf("OptionalInt(6) = %d, %v; want 6, nil", n, err)
	}
	if _, err := OptionalInt("months", "48", 12, 1, 36); err == nil {
		t.Errorf("OptionalInt(48) returned nil error")
	}
	_, err = OptionalInt("months", "abc", 12, 1, 36)
	verrs, ok := err.(ValidationErrors)
	if !ok || verrs.ToMap()["months"] == "" {
		t.Errorf("OptionalInt(abc) error = %v, want ValidationErrors on months", err)
	}
}
