package models

import dErrors "skillforge/pkg/domain-errors"

// Domain errors returned by ledger operations. Compare with errors.Is, which
// matches on code.
var (
	ErrWalletUnavailable = dErrors.New(dErrors.CodeWalletUnavailable, "Please install MetaMask or another Web3 wallet")
	ErrNoAccounts        = dErrors.New(dErrors.CodeWalletUnavailable, "No accounts found. Please unlock your wallet.")
	ErrNotConnected      = dErrors.New(dErrors.CodeNotConnected, "Wallet not connected")
	ErrUserRejected      = dErrors.New(dErrors.CodeUserRejected, "Transaction rejected by user")
	ErrNotFound          = dErrors.New(dErrors.CodeNotFound, MessageNotFound)
	ErrDuplicateID       = dErrors.New(dErrors.CodeConflict, "certificate id already issued")
)

// Field validation messages, checked in this order by Issue.
const (
	MessageRecipientAddressRequired = "Recipient address is required"
	MessageInvalidAddress           = "Invalid Ethereum address"
	MessageRecipientNameRequired    = "Recipient name is required"
	MessageRecipientEmailRequired   = "Recipient email is required"
	MessageInvalidEmail             = "Invalid email address"
	MessageCourseNameRequired       = "Course name is required"
	MessageCourseIDRequired         = "Course ID is required"
	MessageEmptySkills              = "At least one skill must be added"
	MessageInvalidExpiration        = "Expiration date must be after the issue date"
)
