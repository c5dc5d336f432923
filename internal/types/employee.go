// Package types provides type definitions for structured data used throughout the invitation-letters system.
package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Gender is the two-valued gender of an employee. The zero value is unknown
// and marks a malformed record.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// Honorific words used by the roster files and the stores to encode gender.
const (
	HonorificMale   = "السيد"
	HonorificFemale = "السيدة"
)

// ParseHonorific translates an honorific sentinel word into a Gender.
func ParseHonorific(word string) (Gender, error) {
	switch strings.TrimSpace(word) {
	case HonorificMale:
		return GenderMale, nil
	case HonorificFemale:
		return GenderFemale, nil
	default:
		return GenderUnknown, fmt.Errorf("unknown gender honorific %q", word)
	}
}

// Honorific returns the singular honorific word that encodes g, or "" for GenderUnknown.
func (g Gender) Honorific() string {
	switch g {
	case GenderMale:
		return HonorificMale
	case GenderFemale:
		return HonorificFemale
	default:
		return ""
	}
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the gender as "male", "female" or "unknown".
func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON accepts "male"/"female" as well as the honorific words.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		*g = GenderMale
	case "female":
		*g = GenderFemale
	default:
		parsed, err := ParseHonorific(s)
		if err != nil {
			*g = GenderUnknown
			return nil
		}
		*g = parsed
	}
	return nil
}

// Employee is a single roster record. Records are treated as immutable once loaded.
type Employee struct {
	ID                 int64  `json:"employee_id"`
	FullName           string `json:"full_name"`
	Gender             Gender `json:"gender"`
	JobTitle           string `json:"job_title,omitempty"`
	PostResponsibility string `json:"post_responsibility,omitempty"`
	WorkLocation       string `json:"work_location,omitempty"`
	Division           string `json:"division,omitempty"`
	City               string `json:"city,omitempty"`
}

// Key returns the grouping key of the employee.
func (e Employee) Key() GroupKey {
	return NewGroupKey(e.WorkLocation, e.Division, e.City)
}

// Valid reports whether the record carries the fields required for grouping.
func (e Employee) Valid() bool {
	return e.ID > 0 && e.Gender != GenderUnknown
}

// EmployeeRecord is the on-disk shape of a roster entry. Gender is encoded
// with the honorific words.
type EmployeeRecord struct {
	EmployeeID         int64  `json:"employeeId" validate:"required,gt=0"`
	FullName           string `json:"fullName" validate:"required"`
	Gender             string `json:"gender" validate:"required,oneof=السيد السيدة"`
	JobTitle           string `json:"jobTitle"`
	PostResponsibility string `json:"postResponsibility"`
	WorkLocation       string `json:"workLocation"`
	Division           string `json:"division"`
	City               string `json:"city"`
}

// Validate validates the EmployeeRecord using the validator.
func (r *EmployeeRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ToEmployee validates the record and converts it to an Employee.
func (r *EmployeeRecord) ToEmployee() (Employee, error) {
	if err := r.Validate(); err != nil {
		return Employee{}, err
	}
	gender, err := ParseHonorific(r.Gender)
	if err != nil {
		return Employee{}, err
	}
	return Employee{
		ID:                 r.EmployeeID,
		FullName:           strings.TrimSpace(r.FullName),
		Gender:             gender,
		JobTitle:           strings.TrimSpace(r.JobTitle),
		PostResponsibility: strings.TrimSpace(r.PostResponsibility),
		WorkLocation:       strings.TrimSpace(r.WorkLocation),
		Division:           strings.TrimSpace(r.Division),
		City:               strings.TrimSpace(r.City),
	}, nil
}

// RecordFromEmployee converts an Employee back to its on-disk shape.
func RecordFromEmployee(e Employee) EmployeeRecord {
	return EmployeeRecord{
		EmployeeID:         e.ID,
		FullName:           e.FullName,
		Gender:             e.Gender.Honorific(),
		JobTitle:           e.JobTitle,
		PostResponsibility: e.PostResponsibility,
		WorkLocation:       e.WorkLocation,
		Division:           e.Division,
		City:               e.City,
	}
}
