// Package validate implements the form-level validation rules callers
// must satisfy before invoking mutating store operations.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/c360studio/taskboard/entity"
)

// Field limits.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MinPasswordLength    = 8
)

// emailPattern is a pragmatic syntax check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Title checks that a title is present and within the length limit.
func Title(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return fmt.Errorf("title must be %d characters or fewer", MaxTitleLength)
	}
	return nil
}

// Description checks that a description is present and within the length limit.
func Description(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return fmt.Errorf("description must be %d characters or fewer", MaxDescriptionLength)
	}
	return nil
}

// Email checks that s is a syntactically plausible email address.
func Email(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(s) {
		return errors.New("email is not a valid address")
	}
	return nil
}

// Password checks the minimum password length.
func Password(s string) error {
	if len(s) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// PasswordConfirmation checks that the confirmation matches the password.
func PasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return errors.New("passwords do not match")
	}
	return nil
}

// NewProject validates a project creation payload.
func NewProject(p entity.NewProject) error {
	if err := Title(p.Title); err != nil {
		return err
	}
	if err := Description(p.Description); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid project status: %q", p.Status)
	}
	return nil
}

// NewTask validates a task creation payload.
func NewTask(t entity.NewTask) error {
	if err := Title(t.Title); err != nil {
		return err
	}
	if err := Description(t.Description); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid task status: %q", t.Status)
	}
	if t.ProjectID == "" {
		return errors.New("project id is required")
	}
	return nil
}

// Registration validates an account creation payload.
func Registration(r entity.Registration) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if err := Email(r.Email); err != nil {
		return err
	}
	return Password(r.Password)
}

// ProjectPatch validates the populated fields of a project patch.
func ProjectPatch(p entity.ProjectPatch) error {
	if p.Title != nil {
		if err := Title(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := Description(*p.Description); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid project status: %q", *p.Status)
	}
	if p.TaskCount != nil && *p.TaskCount < 0 {
		return errors.New("task count must not be negative")
	}
	if p.CompletedTaskCount != nil && *p.CompletedTaskCount < 0 {
		return errors.New("completed task count must not be negative")
	}
	return nil
}

// TaskPatch validates the populated fields of a task patch.
func TaskPatch(p entity.TaskPatch) error {
	if p.Title != nil {
		if err := Title(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := Description(*p.Description); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid task status: %q", *p.Status)
	}
	return nil
}
