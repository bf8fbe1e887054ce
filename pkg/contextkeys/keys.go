package contextkeys

type contextKey string

// DBContextKey stores the request-scoped *gorm.DB in a context
const DBContextKey = contextKey("db")
