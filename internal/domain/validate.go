package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalid     = errors.New("invalid record")
	ErrDuplicateID = errors.New("duplicate id")
)

var validate = validator.New()

// Validate checks struct tags and reports every failing field in one error
// wrapping ErrInvalid.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidateIncidents checks each record and that ids are unique.
func ValidateIncidents(list []Incident) error {
	seen := make(map[string]struct{}, len(list))
	for i := range list {
		if err := Validate(list[i]); err != nil {
			return fmt.Errorf("incident %d: %w", i, err)
		}
		if _, dup := seen[list[i].ID]; dup {
			return fmt.Errorf("incident %q: %w", list[i].ID, ErrDuplicateID)
		}
		seen[list[i].ID] = struct{}{}
	}
	return nil
}

// DedupeIncidents keeps the first record for each id. Invalid records and
// later repeats are left out and reported, one error per dropped record.
func DedupeIncidents(list []Incident) ([]Incident, []error) {
	kept := make([]Incident, 0, len(list))
	var dropped []error
	seen := make(map[string]struct{}, len(list))
	for i := range list {
		if err := Validate(list[i]); err != nil {
			dropped = append(dropped, fmt.Errorf("incident %d: %w", i, err))
			continue
		}
		if _, dup := seen[list[i].ID]; dup {
			dropped = append(dropped, fmt.Errorf("incident %q: %w", list[i].ID, ErrDuplicateID))
			continue
		}
		seen[list[i].ID] = struct{}{}
		kept = append(kept, list[i])
	}
	return kept, dropped
}

// ValidateEach runs Validate over every element of a list.
func ValidateEach[T any](what string, list []T) error {
	for i := range list {
		if err := Validate(list[i]); err != nil {
			return fmt.Errorf("%s %d: %w", what, i, err)
		}
	}
	return nil
}
