package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FallbackLang is the language every node is authored in; all other
// languages fall back to it when a translation is missing.
const FallbackLang = "en"

// LocalizedText maps a language code to the text in that language. Stored
// as jsonb; a nil map round-trips as SQL NULL (description is optional).
type LocalizedText map[string]string

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *LocalizedText) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into LocalizedText", src)
	}
}
