package models

// FailureKind tags a service-layer failure so the API boundary can map
// it to an HTTP status through a lookup table instead of comparing
// error message text.
type FailureKind string

const (
	KindNotFound           FailureKind = "not_found"
	KindDenied             FailureKind = "denied"
	KindConflict           FailureKind = "conflict"
	KindInvalidCredentials FailureKind = "invalid_credentials"
	KindValidation         FailureKind = "validation"
	KindInternal           FailureKind = "internal"
)

// APIError is a tagged failure raised by the service layer. The
// message is safe to return to clients.
type APIError struct {
	Kind    FailureKind
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Sentinel failures for the closed set of business outcomes. Messages
// match what the API has always returned to clients.
var (
	ErrUserExists        = &APIError{Kind: KindConflict, Message: "User already exists"}
	ErrUserNotRegistered = &APIError{Kind: KindInvalidCredentials, Message: "User not registered. Please create an account."}
	ErrInvalidLogin      = &APIError{Kind: KindInvalidCredentials, Message: "Invalid email or password"}
	ErrProjectNotFound   = &APIError{Kind: KindNotFound, Message: "Project not found"}
	ErrTaskNotFound      = &APIError{Kind: KindNotFound, Message: "Task not found"}

	// ErrProjectDenied covers both a nonexistent project and one owned
	// by someone else; the two cases are deliberately indistinguishable.
	ErrProjectDenied = &APIError{Kind: KindDenied, Message: "Project not found or access denied"}
)
