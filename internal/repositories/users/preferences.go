package users

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// encodePreferences turns prefs into a JSON argument for the SQL backends.
// A nil map is stored as NULL.
func encodePreferences(prefs map[string]string) (any, error) {
	if prefs == nil {
		return nil, nil
	}
	b, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	return string(b), nil
}

func decodePreferences(raw sql.NullString) (map[string]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	prefs := map[string]string{}
	if err := json.Unmarshal([]byte(raw.String), &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, nil
}
