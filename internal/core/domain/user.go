package domain

// User represents a registered account in the domain.
type User struct {
	ID           int64  `json:"id"` // Primary key, assigned by the database, never reused
	Username     string `json:"username"`
	Email        string `json:"email"` // Unique natural key, matched case-sensitively
	PasswordHash string `json:"-"`     // Opaque credential hash, never inspected by the core
	AuditFields
}

// Credential carries a credential value together with an explicit statement of
// whether it is already hashed. The caller decides; nothing infers it from the
// string's shape.
type Credential struct {
	Value  string
	Hashed bool
}
