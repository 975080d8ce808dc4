package models

import (
	"bytes"
	"encoding/json"
)

// Student represents a registered student.
type Student struct {
	ID             string `json:"id"`
	DisplayID      string `json:"studentId"` // e.g. STU202412345, assigned once at creation
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Course         string `json:"course"`
	EnrollmentDate string `json:"enrollmentDate"` // YYYY-MM-DD, stored as text
}

// StudentInput is the payload accepted when registering a student.
// The store assigns ID and DisplayID.
type StudentInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Course         string `json:"course"`
	EnrollmentDate string `json:"enrollmentDate"`
}

// StudentPatch is a partial update. Nil fields are left untouched.
type StudentPatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Course         *string `json:"course,omitempty"`
	EnrollmentDate *string `json:"enrollmentDate,omitempty"`

	// JSON names of fields decoded from an explicit null.
	nulls []string
}

// UnmarshalJSON decodes a patch, remembering which fields were sent as null.
// A null field stays nil but is not treated as absent; see IsNull.
func (p *StudentPatch) UnmarshalJSON(data []byte) error {
	type plain StudentPatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = StudentPatch(decoded)
	p.nulls = nil
	for _, field := range []string{"firstName", "lastName", "email", "phone", "course", "enrollmentDate"} {
		if v, ok := raw[field]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			p.nulls = append(p.nulls, field)
		}
	}
	return nil
}

// IsNull reports whether the field with the given JSON name was sent as null.
func (p StudentPatch) IsNull(field string) bool {
	for _, f := range p.nulls {
		if f == field {
			return true
		}
	}
	return false
}

// Patch returns the input as a patch with every field set.
func (in StudentInput) Patch() StudentPatch {
	return StudentPatch{
		FirstName:      &in.FirstName,
		LastName:       &in.LastName,
		Email:          &in.Email,
		Phone:          &in.Phone,
		Course:         &in.Course,
		EnrollmentDate: &in.EnrollmentDate,
	}
}

// Apply merges the non-nil fields of p onto s and returns the result.
func (p StudentPatch) Apply(s Student) Student {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Course != nil {
		s.Course = *p.Course
	}
	if p.EnrollmentDate != nil {
		s.EnrollmentDate = *p.EnrollmentDate
	}
	return s
}
