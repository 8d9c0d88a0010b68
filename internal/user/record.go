// internal/user/record.go
//
// User record served by the backend and rendered by the console table.
//
// Context
// -------
// One Record mirrors one row of the `users` table (or one entry in the
// in-memory stand-in).  The JSON shape is the wire contract of
// `GET /api/users`:
//
//	{"id":1,"name":"User 1","email":"user1@example.com",
//	 "role":"Admin","createdAt":"2025-03-14T09:26:53.589Z"}
//
// Notes
// -----
// • Records are treated as immutable once fetched.
// • `createdAt` is always encoded in UTC with millisecond precision.
package user

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the backend role enum.  Values are capitalised on the wire.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
	RoleGuest Role = "Guest"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// ISOLayout is the timestamp layout used on the wire and by the global
// text filter.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one user row.
type Record struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type wireRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// MarshalJSON encodes CreatedAt as ISO-8601 UTC with milliseconds.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		CreatedAt: r.CreatedAt.UTC().Format(ISOLayout),
	})
}

// UnmarshalJSON accepts any RFC 3339 timestamp.  An empty or missing
// createdAt leaves the zero time.
func (r *Record) UnmarshalJSON(b []byte) error {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var ts time.Time
	if w.CreatedAt != "" {
		var err error
		ts, err = time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return fmt.Errorf("user %d createdAt: %w", w.ID, err)
		}
	}
	*r = Record{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Role:      w.Role,
		CreatedAt: ts,
	}
	return nil
}
