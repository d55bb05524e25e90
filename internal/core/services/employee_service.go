package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/core/domain"
	"staffdesk/internal/pkg/logger"
)

// Numeric is a request scalar that must hold a number. It accepts a JSON
// number or a numeric string and keeps the raw text for validation.
type Numeric struct {
	raw string
	set bool
}

// NumericValue creates a Numeric holding v
func NumericValue(v float64) Numeric {
	return Numeric{raw: strconv.FormatFloat(v, 'f', -1, 64), set: true}
}

// NumericText creates a Numeric holding unparsed text
func NumericText(s string) Numeric {
	return Numeric{raw: s, set: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Numeric) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Numeric{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*n = Numeric{raw: s, set: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(n.raw, 64); err == nil {
		return []byte(n.raw), nil
	}
	return []byte(strconv.Quote(n.raw)), nil
}

// Text is a request scalar that must hold a JSON string. Any other JSON
// value is kept as a type mismatch and reported against its field.
type Text struct {
	val      string
	mismatch bool
}

// TextValue creates a Text holding s
func TextValue(s string) Text {
	return Text{val: s}
}

// String returns the text, empty on a mismatch
func (t Text) String() string {
	return t.val
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = Text{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = Text{mismatch: true}
		return nil
	}
	*t = Text{val: s}
	return nil
}

// MarshalJSON implements json.Marshaler
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.val)
}

// EmployeeInput is the raw payload of a create or update request
type EmployeeInput struct {
	Name     Text    `json:"name" swaggertype:"string"`
	Email    Text    `json:"email" swaggertype:"string"`
	Position Text    `json:"position" swaggertype:"string"`
	Salary   Numeric `json:"salary" swaggertype:"number"`
	Status   Text    `json:"status" swaggertype:"string"`
}

// employeeRules is the normalized payload with its validation rules
type employeeRules struct {
	Name     string   `json:"name" validate:"required,min=2,max=255,personname"`
	Email    string   `json:"email" validate:"required,email,max=255"`
	Position string   `json:"position" validate:"required,min=2,max=255,personname"`
	Salary   *float64 `json:"salary" validate:"required,gte=0,lte=9999999.99"`
	Status   string   `json:"status" validate:"required,oneof=active inactive"`

	// fields sent as a JSON type other than string
	mismatched       []string
	salaryNotNumeric bool
}

// normalizeEmployee trims text fields, lowercases the email and parses the salary.
// The salary keeps the precision it was sent with.
func normalizeEmployee(in EmployeeInput) employeeRules {
	out := employeeRules{
		Name:     strings.TrimSpace(in.Name.val),
		Email:    strings.ToLower(strings.TrimSpace(in.Email.val)),
		Position: strings.TrimSpace(in.Position.val),
		Status:   in.Status.val,
	}
	for _, f := range []struct {
		field string
		text  Text
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"position", in.Position},
		{"status", in.Status},
	} {
		if f.text.mismatch {
			out.mismatched = append(out.mismatched, f.field)
		}
	}

	raw := strings.TrimSpace(in.Salary.raw)
	if !in.Salary.set || raw == "" {
		return out
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		out.salaryNotNumeric = true
		return out
	}

	out.Salary = &v
	return out
}

// roundCents rounds a validated salary to the decimal(10,2) column
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// EmployeeService handles employee business logic
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
	validator    *Validator
	log          logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo repositories.EmployeeRepository,
	validator *Validator,
	log logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		validator:    validator,
		log:          log.With("component", "employee_service"),
	}
}

// List returns every employee
func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// Get returns one employee
func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return employee, nil
}

// Create validates input and stores a new employee.
// A rejected input returns *domain.ValidationError.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*models.Employee, error) {
	// 1. Normalize + validate
	fields, err := s.Validate(ctx, input, 0)
	if err != nil {
		return nil, err
	}

	// 2. Persist
	employee := &models.Employee{}
	employee.Apply(fields)
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.log.Info(ctx, "employee created", "employee_id", employee.ID)
	return employee, nil
}

// Update replaces every editable field of an existing employee
func (s *EmployeeService) Update(ctx context.Context, id uint, input EmployeeInput) (*models.Employee, error) {
	// 1. Must exist
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Normalize + validate, own email excluded from the uniqueness check
	fields, err := s.Validate(ctx, input, id)
	if err != nil {
		return nil, err
	}

	// 3. Persist
	employee.Apply(fields)
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEntry):
			return nil, emailTakenError()
		case errors.Is(err, repositories.ErrNotFound):
			return nil, domain.ErrEmployeeNotFound
		default:
			return nil, fmt.Errorf("update employee %d: %w", id, err)
		}
	}

	s.log.Info(ctx, "employee updated", "employee_id", employee.ID)
	return employee, nil
}

// Delete removes an employee permanently
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("delete employee %d: %w", id, err)
	}

	s.log.Info(ctx, "employee deleted", "employee_id", id)
	return nil
}

// Validate runs the normalize and validate stages without writing anything.
// excludeID is the employee allowed to keep its current email; 0 for creates.
func (s *EmployeeService) Validate(ctx context.Context, input EmployeeInput, excludeID uint) (domain.EmployeeFields, error) {
	rules := normalizeEmployee(input)
	verr := domain.NewValidationError()

	for _, field := range rules.mismatched {
		verr.Add(field, typeMismatchMessages[field])
	}
	if rules.salaryNotNumeric {
		verr.Add("salary", msgNotNumeric)
	}
	if err := s.validator.Struct(rules, verr); err != nil {
		return domain.EmployeeFields{}, err
	}

	if !verr.Has("email") {
		taken, err := s.employeeRepo.ExistsByEmail(ctx, rules.Email, excludeID)
		if err != nil {
			return domain.EmployeeFields{}, fmt.Errorf("check employee email: %w", err)
		}
		if taken {
			verr.Add("email", msgEmailTaken)
		}
	}

	if verr := verr.OrNil(); verr != nil {
		return domain.EmployeeFields{}, verr
	}

	return domain.EmployeeFields{
		Name:     rules.Name,
		Email:    rules.Email,
		Position: rules.Position,
		Salary:   roundCents(*rules.Salary),
		Status:   domain.EmployeeStatus(rules.Status),
	}, nil
}

func emailTakenError() *domain.ValidationError {
	verr := domain.NewValidationError()
	verr.Add("email", msgEmailTaken)
	return verr
}
