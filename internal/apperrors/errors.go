package apperrors

import "errors"

// Code is the stable, caller-visible error code carried in API responses.
type Code string

const (
	CodeInvalidAccountType Code = "INVALID_ACCOUNT_TYPE"
	CodeDuplicateAccount   Code = "DUPLICATE_ACCOUNT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidAmount      Code = "INVALID_AMOUNT"
	CodeInvalidDate        Code = "INVALID_DATE"
	CodeSameAccounts       Code = "SAME_ACCOUNTS"
	CodeMissingFields      Code = "MISSING_FIELDS"
	CodeInvalidContentType Code = "INVALID_CONTENT_TYPE"
	CodeDatabaseError      Code = "DATABASE_ERROR"
)

// ErrNotFound indicates that a requested resource could not be found or is retired.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidAccountType indicates an account type outside the closed enum.
var ErrInvalidAccountType = errors.New("invalid account type")

// ErrDuplicateAccount indicates an active account with the same name already exists.
var ErrDuplicateAccount = errors.New("account name already in use")

// ErrInvalidAmount indicates an amount that does not parse as an exact decimal.
var ErrInvalidAmount = errors.New("amount is not a valid number")

// ErrInvalidDate indicates a date that does not parse as a calendar date.
var ErrInvalidDate = errors.New("invalid date format")

// ErrSameAccounts indicates a transaction whose debit and credit legs reference the same account.
var ErrSameAccounts = errors.New("debit and credit accounts cannot be the same")

// ErrDatabase indicates a persistence failure; the in-flight mutation was rolled back.
var ErrDatabase = errors.New("database error")
