package domain

import "time"

// Connection is the symmetric relation between two accounts that allows money to
// move between them. The pair is unordered; it is stored canonicalized with the
// lower id first so at most one row can exist per pair.
type Connection struct {
	UserA     int64     `json:"userA"`
	UserB     int64     `json:"userB"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanonicalPair orders two account ids so {A,B} and {B,A} map to the same edge.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
