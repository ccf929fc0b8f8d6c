package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidToken is returned for tokens that were not produced by Encode.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor is the opaque pagination state we encode/decode.
// ID + CreatedUnix (in millis) establish a stable cursor over (created_at DESC, id DESC).
type Cursor struct {
	ID          string `json:"id"`
	CreatedUnix int64  `json:"created_unix,omitempty"`
}

// IsZero reports whether the cursor points at the first page.
func (c Cursor) IsZero() bool { return c.ID == "" || c.CreatedUnix == 0 }

// Time returns the cursor timestamp in UTC.
func (c Cursor) Time() time.Time { return time.UnixMilli(c.CreatedUnix).UTC() }

// After builds the cursor that continues past a row.
func After(id string, createdAt time.Time) Cursor {
	return Cursor{ID: id, CreatedUnix: createdAt.UnixMilli()}
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 string into a Cursor.
// Empty token → empty cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, ErrInvalidToken
	}
	return c, nil
}

// Page trims a limit+1 result set to limit rows and returns the token for the next page.
func Page[T any](rows []T, limit int, key func(T) Cursor) ([]T, *string) {
	if limit <= 0 || len(rows) <= limit {
		return rows, nil
	}
	token, err := Encode(key(rows[limit-1]))
	if err != nil {
		return rows[:limit], nil
	}
	return rows[:limit], &token
}
