package domain

// ContextKey is used for values stored by the auth middleware.
type ContextKey string

const (
	KeyUserID    ContextKey = "UserID"
	KeyUserEmail ContextKey = "UserEmail"
)
