package contextkeys

// ContextKey is the type for values stored in request contexts.
type ContextKey string

const (
	UserIDKey    ContextKey = "userID"
	UserRoleKey  ContextKey = "role"
	RequestIDKey ContextKey = "requestID"
)
