package services

import (
	"encoding/json"
	"testing"

	"staffdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func salary(v float64) *float64 { return &v }

func validRules() employeeRules {
	return employeeRules{
		Name:     "Alice Johnson",
		Email:    "alice@company.com",
		Position: "Software Engineer",
		Salary:   salary(85000),
		Status:   "active",
	}
}

func TestValidator_EmployeeRules(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name   string
		mutate func(r *employeeRules)
		field  string
		want   string
	}{
		{"valid", func(r *employeeRules) {}, "", ""},
		{"missing name", func(r *employeeRules) { r.Name = "" }, "name", "The name field is required."},
		{"short name", func(r *employeeRules) { r.Name = "A" }, "name", "The name field must be at least 2 characters."},
		{"digits in name", func(r *employeeRules) { r.Name = "R2D2" }, "name", "The name may only contain letters, spaces, hyphens, dots, and apostrophes."},
		{"bad position", func(r *employeeRules) { r.Position = "Dev#1" }, "position", "The position may only contain letters, spaces, hyphens, dots, and apostrophes."},
		{"bad email", func(r *employeeRules) { r.Email = "not-an-email" }, "email", "The email field must be a valid email address."},
		{"missing salary", func(r *employeeRules) { r.Salary = nil }, "salary", "The salary field is required."},
		{"negative salary", func(r *employeeRules) { r.Salary = salary(-1) }, "salary", "The salary field must be at least 0."},
		{"salary too high", func(r *employeeRules) { r.Salary = salary(10000000) }, "salary", "The salary must not exceed 9,999,999.99."},
		{"unknown status", func(r *employeeRules) { r.Status = "pending" }, "status", "The selected status is invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRules()
			tt.mutate(&r)

			verr := domain.NewValidationError()
			require.NoError(t, v.Struct(r, verr))

			if tt.field == "" {
				assert.True(t, verr.Empty(), "unexpected errors: %v", verr.Fields)
				return
			}
			assert.Equal(t, []string{tt.want}, verr.Fields[tt.field])
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestValidator_NameAcceptsUnicodeAndPunctuation(t *testing.T) {
	v := newTestValidator(t)

	for _, name := range []string{"Zoë O'Brien", "Jean-Luc Picard", "J. R. Smith", "Łukasz Żółć", "山田 太郎"} {
		r := validRules()
		r.Name = name

		verr := domain.NewValidationError()
		require.NoError(t, v.Struct(r, verr))
		assert.False(t, verr.Has("name"), "%q rejected: %v", name, verr.Fields["name"])
	}
}

func TestValidator_LengthCountsCharacters(t *testing.T) {
	v := newTestValidator(t)

	r := validRules()
	r.Name = "Éa" // two runes, three bytes
	verr := domain.NewValidationError()
	require.NoError(t, v.Struct(r, verr))
	assert.False(t, verr.Has("name"))
}

func TestValidator_KeepsExistingFieldMessage(t *testing.T) {
	v := newTestValidator(t)

	r := validRules()
	r.Salary = nil

	verr := domain.NewValidationError()
	verr.Add("salary", msgNotNumeric)
	require.NoError(t, v.Struct(r, verr))

	assert.Equal(t, []string{msgNotNumeric}, verr.Fields["salary"])
}

func TestNormalizeEmployee(t *testing.T) {
	out := normalizeEmployee(EmployeeInput{
		Name:     TextValue("  Alice Johnson "),
		Email:    TextValue("  Alice.Johnson@Company.COM "),
		Position: TextValue("\tEngineer\n"),
		Salary:   NumericText(" 1234.567 "),
		Status:   TextValue("active"),
	})

	assert.Equal(t, "Alice Johnson", out.Name)
	assert.Equal(t, "alice.johnson@company.com", out.Email)
	assert.Equal(t, "Engineer", out.Position)
	require.NotNil(t, out.Salary)
	assert.Equal(t, 1234.567, *out.Salary)
	assert.False(t, out.salaryNotNumeric)
	assert.Empty(t, out.mismatched)
}

func TestNormalizeEmployee_TypeMismatch(t *testing.T) {
	var in EmployeeInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":123,"email":["a@b.com"],"position":"Engineer","salary":100,"status":true}`), &in))

	out := normalizeEmployee(in)
	assert.Equal(t, []string{"name", "email", "status"}, out.mismatched)
	assert.Equal(t, "Engineer", out.Position)
	assert.Empty(t, out.Name)
}

func TestText_UnmarshalJSON(t *testing.T) {
	var tx Text

	require.NoError(t, tx.UnmarshalJSON([]byte(`"active"`)))
	assert.Equal(t, TextValue("active"), tx)

	require.NoError(t, tx.UnmarshalJSON([]byte(`true`)))
	assert.True(t, tx.mismatch)
	assert.Empty(t, tx.String())

	require.NoError(t, tx.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, Text{}, tx)
}

func TestNormalizeEmployee_Salary(t *testing.T) {
	tests := []struct {
		name       string
		in         Numeric
		wantNil    bool
		notNumeric bool
	}{
		{"absent", Numeric{}, true, false},
		{"empty string", NumericText(""), true, false},
		{"text", NumericText("lots"), true, true},
		{"nan", NumericText("NaN"), true, true},
		{"inf", NumericText("Inf"), true, true},
		{"number", NumericValue(50000), false, false},
		{"numeric string", NumericText("50000.50"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalizeEmployee(EmployeeInput{Salary: tt.in})
			assert.Equal(t, tt.wantNil, out.Salary == nil)
			assert.Equal(t, tt.notNumeric, out.salaryNotNumeric)
		})
	}
}

func TestNumeric_UnmarshalJSON(t *testing.T) {
	var in EmployeeInput

	require.NoError(t, in.Salary.UnmarshalJSON([]byte(`85000.5`)))
	assert.Equal(t, NumericText("85000.5"), in.Salary)

	require.NoError(t, in.Salary.UnmarshalJSON([]byte(`"85000"`)))
	assert.Equal(t, NumericText("85000"), in.Salary)

	require.NoError(t, in.Salary.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, Numeric{}, in.Salary)
}
