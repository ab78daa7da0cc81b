package domain

import "time"

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject   string
	ID        string
	ExpiresAt time.Time
}

// Audit actions and entities.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"

	EntityUser    = "user"
	EntityExpense = "expense"
)

// AuditEntry records one successful mutation.
type AuditEntry struct {
	Entity   string
	EntityID int64
	Action   string
	Actor    string // empty for anonymous calls such as registration
	At       time.Time
}
