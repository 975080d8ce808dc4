// Package validation checks student payloads against a per-field rule table.
//
// Each rule is a go-playground/validator tag evaluated against a single field
// value with Validate.Var, so the table below is the whole schema.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"studentreg/internal/models"

	"github.com/go-playground/validator/v10"
)

// Rule is one check on a field. Tag is a validator tag such as "min=2".
type Rule struct {
	Tag     string
	Message string
}

// FieldRules lists the rules for one field, evaluated in order.
type FieldRules struct {
	Field string
	Value func(p *models.StudentPatch) *string
	Rules []Rule
}

// RequiredMessage is reported for a field missing from a create payload.
const RequiredMessage = "Required"

// NullMessage is reported for a field sent as JSON null.
const NullMessage = "Expected string, received null"

var phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)

// StudentRules is the schema for student payloads.
var StudentRules = []FieldRules{
	{
		Field: "firstName",
		Value: func(p *models.StudentPatch) *string { return p.FirstName },
		Rules: []Rule{{Tag: "min=2", Message: "First name must be at least 2 characters"}},
	},
	{
		Field: "lastName",
		Value: func(p *models.StudentPatch) *string { return p.LastName },
		Rules: []Rule{{Tag: "min=2", Message: "Last name must be at least 2 characters"}},
	},
	{
		Field: "email",
		Value: func(p *models.StudentPatch) *string { return p.Email },
		Rules: []Rule{{Tag: "email", Message: "Please enter a valid email address"}},
	},
	{
		Field: "phone",
		Value: func(p *models.StudentPatch) *string { return p.Phone },
		Rules: []Rule{
			{Tag: "min=10", Message: "Phone number must be at least 10 digits"},
			{Tag: "phone", Message: "Please enter a valid phone number"},
		},
	},
	{
		Field: "course",
		Value: func(p *models.StudentPatch) *string { return p.Course },
		Rules: []Rule{{Tag: "min=1", Message: "Please select a course"}},
	},
	{
		Field: "enrollmentDate",
		Value: func(p *models.StudentPatch) *string { return p.EnrollmentDate },
		Rules: []Rule{{Tag: "min=1", Message: "Please select an enrollment date"}},
	},
}

// Violation is a single failed field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of violations for a payload.
type Errors []Violation

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, fmt.Sprintf("%s at %q", v.Message, v.Field))
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// Validator evaluates the rule table.
type Validator struct {
	validate *validator.Validate
	rules    []FieldRules
}

// New creates a Validator for StudentRules.
func New() *Validator {
	v := validator.New()
	// RegisterValidation only fails on an empty tag or a builtin clash.
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v, rules: StudentRules}
}

// ValidateCreate checks a registration payload. Every field must be present;
// the payload is taken as a patch so that absent fields can be told apart
// from empty ones.
func (v *Validator) ValidateCreate(p models.StudentPatch) (models.StudentInput, error) {
	if errs := v.check(&p, true); len(errs) > 0 {
		return models.StudentInput{}, errs
	}
	return models.StudentInput{
		FirstName:      *p.FirstName,
		LastName:       *p.LastName,
		Email:          *p.Email,
		Phone:          *p.Phone,
		Course:         *p.Course,
		EnrollmentDate: *p.EnrollmentDate,
	}, nil
}

// ValidatePatch checks the fields present in a partial update.
func (v *Validator) ValidatePatch(p models.StudentPatch) (models.StudentPatch, error) {
	if errs := v.check(&p, false); len(errs) > 0 {
		return models.StudentPatch{}, errs
	}
	return p, nil
}

func (v *Validator) check(p *models.StudentPatch, create bool) Errors {
	var errs Errors
	for _, fr := range v.rules {
		if p.IsNull(fr.Field) {
			errs = append(errs, Violation{Field: fr.Field, Message: NullMessage})
			continue
		}
		value := fr.Value(p)
		if value == nil {
			if create {
				errs = append(errs, Violation{Field: fr.Field, Message: RequiredMessage})
			}
			continue
		}
		for _, r := range fr.Rules {
			if err := v.validate.Var(*value, r.Tag); err != nil {
				errs = append(errs, Violation{Field: fr.Field, Message: r.Message})
				break
			}
		}
	}
	return errs
}
