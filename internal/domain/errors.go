package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode identifies a specific failure in the domain.
type ErrorCode string

const (
	// Common errors
	CodeInternal    ErrorCode = "INTERNAL_ERROR"
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodePersistence ErrorCode = "PERSISTENCE_ERROR"
	CodeValidation  ErrorCode = "VALIDATION_ERROR"

	// Document / question validation errors
	CodeInvalidQuestionKind       ErrorCode = "INVALID_QUESTION_KIND"
	CodeInvalidCorrectAnswerCount ErrorCode = "INVALID_CORRECT_ANSWER_COUNT"
	CodeInsufficientOptions       ErrorCode = "INSUFFICIENT_OPTIONS"
	CodeInvalidPoints             ErrorCode = "INVALID_POINTS"
	CodeIndexOutOfRange           ErrorCode = "INDEX_OUT_OF_RANGE"
	CodeEmptyQuiz                 ErrorCode = "EMPTY_QUIZ"
	CodeInvalidSettings           ErrorCode = "INVALID_SETTINGS"

	// Editor errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeQuestionNotFound    ErrorCode = "QUESTION_NOT_FOUND"
	CodeOptionNotFound      ErrorCode = "OPTION_NOT_FOUND"
	CodeBelowMinimumOptions ErrorCode = "BELOW_MINIMUM_OPTIONS"
	CodeUnsupportedForKind  ErrorCode = "UNSUPPORTED_FOR_QUESTION_KIND"

	// Share / public access errors
	CodeDocumentNotPublic ErrorCode = "DOCUMENT_NOT_PUBLIC"
	CodeTokenInvalid      ErrorCode = "TOKEN_INVALID"
	CodeTokenRevoked      ErrorCode = "TOKEN_REVOKED"

	// Session errors
	CodeQuizHasNoQuestions     ErrorCode = "QUIZ_HAS_NO_QUESTIONS"
	CodeSessionNotFound        ErrorCode = "SESSION_NOT_FOUND"
	CodeSessionNotActive       ErrorCode = "SESSION_NOT_ACTIVE"
	CodeSessionAlreadyTerminal ErrorCode = "SESSION_ALREADY_TERMINAL"
	CodeQuestionNotInSnapshot  ErrorCode = "QUESTION_NOT_IN_SNAPSHOT"
)

// DomainError represents a domain-specific error.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface.
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError.
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}

// Helper constructors for common errors.

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("quiz not found: %s", quizID), nil)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("question not found: %s", questionID), nil)
}

func NewOptionNotFoundError(optionID string) *DomainError {
	return NewError(CodeOptionNotFound, fmt.Sprintf("option not found: %s", optionID), nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("session not found: %s", sessionID), nil)
}

func NewTokenInvalidError(cause error) *DomainError {
	return NewError(CodeTokenInvalid, "share token is not valid", cause)
}

func NewTokenRevokedError() *DomainError {
	return NewError(CodeTokenRevoked, "share token has been revoked", nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates request validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

// NewMissingFieldError reports a required field that was absent.
func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

// NewInvalidFormatError reports a field whose value could not be parsed.
func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("invalid value: %s", value)}
}
