package models

import (
	"regexp"
	"strings"
	"time"

	dErrors "skillforge/pkg/domain-errors"
)

var (
	addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// IsEmail reports whether s has a local@domain.tld shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Normalize trims text fields and drops blank skills, keeping skill order.
func (r *IssueRequest) Normalize() {
	r.RecipientAddress = strings.TrimSpace(r.RecipientAddress)
	r.RecipientName = strings.TrimSpace(r.RecipientName)
	r.RecipientEmail = strings.TrimSpace(r.RecipientEmail)
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.CourseID = strings.TrimSpace(r.CourseID)
	r.Grade = strings.TrimSpace(r.Grade)

	skills := make([]string, 0, len(r.Skills))
	for _, skill := range r.Skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	r.Skills = skills
}

// Validate checks a normalized request and returns the first failure.
// Required text fields come first, then address, email, skills and
// expiration, each with its own code.
func (r *IssueRequest) Validate(now time.Time) error {
	if r.RecipientName == "" {
		return dErrors.New(dErrors.CodeValidation, MessageRecipientNameRequired)
	}
	if r.CourseName == "" {
		return dErrors.New(dErrors.CodeValidation, MessageCourseNameRequired)
	}
	if r.CourseID == "" {
		return dErrors.New(dErrors.CodeValidation, MessageCourseIDRequired)
	}
	if r.RecipientAddress == "" {
		return dErrors.New(dErrors.CodeInvalidAddress, MessageRecipientAddressRequired)
	}
	if !IsAddress(r.RecipientAddress) {
		return dErrors.New(dErrors.CodeInvalidAddress, MessageInvalidAddress)
	}
	if r.RecipientEmail == "" {
		return dErrors.New(dErrors.CodeInvalidEmail, MessageRecipientEmailRequired)
	}
	if !IsEmail(r.RecipientEmail) {
		return dErrors.New(dErrors.CodeInvalidEmail, MessageInvalidEmail)
	}
	if len(r.Skills) == 0 {
		return dErrors.New(dErrors.CodeEmptySkills, MessageEmptySkills)
	}
	if r.ExpirationDate != nil && !r.ExpirationDate.After(now) {
		return dErrors.New(dErrors.CodeInvalidExpiration, MessageInvalidExpiration)
	}
	return nil
}
