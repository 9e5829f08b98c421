package store

import (
	"time"

	"skillforge/internal/certificate/models"
)

// DemoIssuerAddress is the issuer recorded on the demo certificates.
const DemoIssuerAddress = "0x1234567890123456789012345678901234567890"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// DemoCertificates returns the five sample certificates of the demo ledger,
// all owned by wallet. CERT-GHI456MNO789 expired on 2025-07-20 and
// CERT-MNO789STU012 never expires.
func DemoCertificates(wallet string) []models.Certificate {
	demo := []models.Certificate{
		{
			ID:              "CERT-ABC123XYZ456",
			RecipientName:   "John Smith",
			RecipientEmail:  "john.smith@email.com",
			CourseName:      "Advanced React Development",
			CourseID:        "REACT-ADV-001",
			IssueDate:       day(2024, time.August, 15),
			ExpirationDate:  ptr(day(2026, time.August, 15)),
			Grade:           "A+",
			Skills:          []string{"React", "TypeScript", "Redux", "Next.js", "Testing"},
			TransactionHash: "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
			BlockNumber:     ptr(uint64(18945672)),
		},
		{
			ID:              "CERT-DEF789UVW123",
			RecipientName:   "Sarah Johnson",
			RecipientEmail:  "sarah.johnson@email.com",
			CourseName:      "Full Stack JavaScript Development",
			CourseID:        "JS-FULL-002",
			IssueDate:       day(2024, time.September, 1),
			ExpirationDate:  ptr(day(2027, time.September, 1)),
			Grade:           "A",
			Skills:          []string{"JavaScript", "Node.js", "MongoDB", "Express", "Vue.js"},
			TransactionHash: "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
			BlockNumber:     ptr(uint64(18965431)),
		},
		{
			ID:              "CERT-GHI456MNO789",
			RecipientName:   "Mike Davis",
			RecipientEmail:  "mike.davis@email.com",
			CourseName:      "Blockchain Development Fundamentals",
			CourseID:        "BLOCKCHAIN-101",
			IssueDate:       day(2024, time.July, 20),
			ExpirationDate:  ptr(day(2025, time.July, 20)),
			Grade:           "B+",
			Skills:          []string{"Solidity", "Web3", "Smart Contracts", "DeFi", "NFTs"},
			TransactionHash: "0x9876543210fedcba9876543210fedcba9876543210fedcba9876543210fedcba",
			BlockNumber:     ptr(uint64(18923456)),
		},
		{
			ID:              "CERT-JKL123PQR456",
			RecipientName:   "Emma Wilson",
			RecipientEmail:  "emma.wilson@email.com",
			CourseName:      "Python Data Science Bootcamp",
			CourseID:        "PY-DATA-003",
			IssueDate:       day(2024, time.June, 10),
			ExpirationDate:  ptr(day(2026, time.June, 10)),
			Grade:           "A+",
			Skills:          []string{"Python", "Pandas", "NumPy", "Machine Learning", "Data Visualization"},
			TransactionHash: "0xfedcba0987654321fedcba0987654321fedcba0987654321fedcba0987654321",
			BlockNumber:     ptr(uint64(18876543)),
		},
		{
			ID:              "CERT-MNO789STU012",
			RecipientName:   "Alex Thompson",
			RecipientEmail:  "alex.thompson@email.com",
			CourseName:      "DevOps and Cloud Architecture",
			CourseID:        "DEVOPS-CLOUD-004",
			IssueDate:       day(2024, time.May, 25),
			Grade:           "A",
			Skills:          []string{"Docker", "Kubernetes", "AWS", "CI/CD", "Terraform"},
			TransactionHash: "0x5678901234abcdef5678901234abcdef5678901234abcdef5678901234abcdef",
			BlockNumber:     ptr(uint64(18834567)),
		},
	}
	for i := range demo {
		demo[i].RecipientAddress = wallet
		demo[i].IssuerName = models.DefaultIssuerName
		demo[i].IssuerAddress = DemoIssuerAddress
	}
	return demo
}
