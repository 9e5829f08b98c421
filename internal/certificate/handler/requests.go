package handler

import (
	"strings"
	"time"

	"skillforge/internal/certificate/models"
	"skillforge/pkg/validation"
)

// IssueCertificateRequest is the body of POST /certificates. Fields are
// declared in the order their failures are reported.
type IssueCertificateRequest struct {
	RecipientName    string     `json:"recipient_name" validate:"required,notblank"`
	CourseName       string     `json:"course_name" validate:"required,notblank"`
	CourseID         string     `json:"course_id" validate:"required,notblank"`
	RecipientAddress string     `json:"recipient_address" validate:"required,eth_addr"`
	RecipientEmail   string     `json:"recipient_email" validate:"required,email"`
	Skills           []string   `json:"skills" validate:"min=1"`
	Grade            string     `json:"grade,omitempty"`
	ExpirationDate   *time.Time `json:"expiration_date,omitempty"`
	Confirm          bool       `json:"confirm"`
}

func (r *IssueCertificateRequest) Normalize() {
	r.RecipientName = strings.TrimSpace(r.RecipientName)
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.CourseID = strings.TrimSpace(r.CourseID)
	r.RecipientAddress = strings.TrimSpace(r.RecipientAddress)
	r.RecipientEmail = strings.TrimSpace(r.RecipientEmail)
	r.Grade = strings.TrimSpace(r.Grade)
	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	r.Skills = skills
}

func (r *IssueCertificateRequest) Validate() error {
	if err := validation.CheckStringLength("recipient_name", r.RecipientName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("course_name", r.CourseName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("course_id", r.CourseID, validation.MaxCourseIDLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("recipient_email", r.RecipientEmail, validation.MaxEmailLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("grade", r.Grade, validation.MaxGradeLength); err != nil {
		return err
	}
	if err := validation.CheckSliceCount("skills", len(r.Skills), validation.MaxSkills); err != nil {
		return err
	}
	if err := validation.CheckEachStringLength("skill", r.Skills, validation.MaxSkillLength); err != nil {
		return err
	}
	return validation.Validate(r)
}

func (r *IssueCertificateRequest) toModel() models.IssueRequest {
	return models.IssueRequest{
		RecipientAddress: r.RecipientAddress,
		RecipientName:    r.RecipientName,
		RecipientEmail:   r.RecipientEmail,
		CourseName:       r.CourseName,
		CourseID:         r.CourseID,
		Skills:           r.Skills,
		Grade:            r.Grade,
		ExpirationDate:   r.ExpirationDate,
	}
}

// RevokeCertificateRequest is the body of POST /certificates/{id}/revoke.
type RevokeCertificateRequest struct {
	Confirm bool `json:"confirm"`
}
