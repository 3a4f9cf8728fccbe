package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
)

// TranscriptMeta is the loosely structured attribute bag attached to a
// transcript by the ingestion side. It is untrusted input: Scan never fails
// on malformed data, it falls back to an empty document and marks the row
// so callers can log the downgrade.
type TranscriptMeta struct {
	Version      int               `json:"version,omitempty"`
	DurationSec  int               `json:"duration_sec,omitempty"`
	Participants []string          `json:"participants,omitempty"`
	Language     string            `json:"language,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`

	// Malformed is set when the stored value could not be parsed.
	Malformed bool `json:"-" gorm:"-"`
}

// IsZero reports whether the document carries no data.
func (m TranscriptMeta) IsZero() bool {
	return m.Version == 0 && m.DurationSec == 0 && len(m.Participants) == 0 &&
		m.Language == "" && len(m.Extra) == 0
}

// ParseMeta decodes a raw metadata payload. On malformed input it returns an
// empty document together with the parse error so the caller can log it;
// the returned document is always usable.
func ParseMeta(raw []byte) (TranscriptMeta, error) {
	var m TranscriptMeta
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &m); err != nil {
		return TranscriptMeta{Malformed: true}, &apperrors.ParseError{Err: err}
	}
	return m, nil
}

func (m TranscriptMeta) Value() (driver.Value, error) {
	if m.IsZero() {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *TranscriptMeta) Scan(value interface{}) error {
	if m == nil {
		return fmt.Errorf("models.TranscriptMeta: Scan on nil pointer")
	}
	if value == nil {
		*m = TranscriptMeta{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*m = TranscriptMeta{Malformed: true}
		return nil
	}

	parsed, err := ParseMeta(raw)
	*m = parsed
	_ = err // the row stays loadable; Malformed records the downgrade
	return nil
}
