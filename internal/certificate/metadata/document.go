// Package metadata builds and stores the off-ledger documents that describe
// issued certificates. Documents are addressed by content hash and carry a
// Keccak-256 digest checked on every read.
package metadata

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"skillforge/internal/certificate/models"
	"skillforge/pkg/platform/sentinel"
)

// DateLayout renders dates in metadata attributes.
const DateLayout = "January 2, 2006"

// Trait names shared by every document.
const (
	TraitRecipient      = "Recipient"
	TraitCourse         = "Course"
	TraitSkills         = "Skills"
	TraitGrade          = "Grade"
	TraitIssueDate      = "Issue Date"
	TraitExpirationDate = "Expiration Date"
)

// ErrDigestMismatch is returned when a stored document fails its digest check.
var ErrDigestMismatch = fmt.Errorf("metadata digest mismatch: %w", sentinel.ErrCorrupted)

// Build derives the metadata document for a certificate.
func Build(cert models.Certificate) *models.MetadataDocument {
	grade := cert.Grade
	if grade == "" {
		grade = "N/A"
	}
	doc := &models.MetadataDocument{
		Name:        cert.CourseName + " Certificate",
		Description: fmt.Sprintf("Certificate for %s completing %s", cert.RecipientName, cert.CourseName),
		Image:       "",
		Attributes: []models.MetadataAttribute{
			{TraitType: TraitRecipient, Value: cert.RecipientName},
			{TraitType: TraitCourse, Value: cert.CourseName},
			{TraitType: TraitSkills, Value: models.SkillsString(cert.Skills)},
			{TraitType: TraitGrade, Value: grade},
			{TraitType: TraitIssueDate, Value: cert.IssueDate.Format(DateLayout)},
		},
	}
	if cert.ExpirationDate != nil {
		doc.Attributes = append(doc.Attributes, models.MetadataAttribute{
			TraitType: TraitExpirationDate,
			Value:     cert.ExpirationDate.Format(DateLayout),
		})
	}
	return doc
}

// envelope is the stored form of a document.
type envelope struct {
	Digest   string          `json:"digest"`
	Document json.RawMessage `json:"document"`
}

// Digest returns the 0x-prefixed Keccak-256 of the document's JSON encoding.
func Digest(doc *models.MetadataDocument) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode metadata document: %w", err)
	}
	return digestOf(raw), nil
}

func digestOf(raw []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(raw)
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// Encode wraps a document with its digest.
func Encode(doc *models.MetadataDocument) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode metadata document: %w", err)
	}
	return json.Marshal(envelope{Digest: digestOf(raw), Document: raw})
}

// Decode unwraps a stored envelope and verifies its digest.
func Decode(data []byte) (*models.MetadataDocument, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode metadata envelope: %w: %w", err, sentinel.ErrCorrupted)
	}
	compact := new(bytes.Buffer)
	if err := json.Compact(compact, env.Document); err != nil {
		return nil, fmt.Errorf("decode metadata document: %w: %w", err, sentinel.ErrCorrupted)
	}
	if digestOf(compact.Bytes()) != env.Digest {
		return nil, ErrDigestMismatch
	}
	var doc models.MetadataDocument
	if err := json.Unmarshal(env.Document, &doc); err != nil {
		return nil, fmt.Errorf("decode metadata document: %w: %w", err, sentinel.ErrCorrupted)
	}
	return &doc, nil
}

// ObjectKey is the storage key for a content hash.
func ObjectKey(contentHash string) string {
	return contentHash + ".json"
}
