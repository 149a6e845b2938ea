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
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
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

func TestIsValidPAN(t *testing.T) {
	valid := []string{"ABCDE1234F", "abcde1234f"}
	invalid := []string{"ABCD1234F", "ABCDE12345", "ABCDE1234FG", "1234567890", ""}
	for _, pan := range valid {
		if !IsValidPAN(pan) {
			t.Errorf("IsValidPAN(%q) = false, want true", pan)
		}
	}
	for _, pan := range invalid {
		if IsValidPAN(pan) {
			t.Errorf("IsValidPAN(%q) = true, want false", pan)
		}
	}
}

func TestIsValidUAN(t *testing.T) {
	valid := []string{"100123456789"}
	invalid := []string{"10012345678", "1001234567890", "10012345678a", ""}
	for _, uan := range valid {
		if !IsValidUAN(uan) {
			t.Errorf("IsValidUAN(%q) = false, want true", uan)
		}
	}
	for _, uan := range invalid {
		if IsValidUAN(uan) {
			t.Errorf("IsValidUAN(%q) = true, want false", uan)
		}
	}
}

func TestIsValidESINumber(t *testing.T) {
	valid := []string{"1234567890", "12345678901234567"}
	invalid := []string{"123456789", "12345678901", "123456789012345678", "123456789a", ""}
	for _, esi := range valid {
		if !IsValidESINumber(esi) {
			t.Errorf("IsValidESINumber(%q) = false, want true", esi)
		}
	}
	for _, esi := range invalid {
		if IsValidESINumber(esi) {
			t.Errorf("IsValidESINumber(%q) = true, want false", esi)
		}
	}
}

func TestIsValidMonthAndYear(t *testing.T) {
	if IsValidMonth(0) || IsValidMonth(13) || !IsValidMonth(1) || !IsValidMonth(12) {
		t.Error("IsValidMonth bounds are wrong")
	}
	if IsValidYear(1989) || IsValidYear(2101) || !IsValidYear(1990) || !IsValidYear(2100) {
		t.Error("IsValidYear bounds are wrong")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "must be between 1 and 12"},
		{Field: "year", Message: "must be between 1990 and 2100"},
	}

	want := "month: must be between 1 and 12; year: must be between 1990 and 2100"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["month"] == "" || m["year"] == "" {
		t.Errorf("ToMap() = %v, missing fields", m)
	}
}
