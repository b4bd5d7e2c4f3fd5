package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type FieldType string

const (
	FieldTypeUser    FieldType = "user"
	FieldTypeSession FieldType = "session"
	FieldTypeTrack   FieldType = "track"
)

// Field is a user supplied key/value pair attached to a session.
type Field struct {
	Type  FieldType `json:"type"`
	Name  string    `json:"name"`
	Value string    `json:"value"`
}

// Session is the replay session record as served by the backend. Views treat
// it as read-only; the starred flag is only changed through the session cache.
type Session struct {
	ID                             string    `json:"id"`
	SecureID                       string    `json:"secure_id"`
	CreatedAt                      time.Time `json:"created_at"`
	Identifier                     string    `json:"identifier,omitempty"`
	Fingerprint                    string    `json:"fingerprint,omitempty"`
	BrowserName                    string    `json:"browser_name,omitempty"`
	BrowserVersion                 string    `json:"browser_version,omitempty"`
	OSName                         string    `json:"os_name,omitempty"`
	OSVersion                      string    `json:"os_version,omitempty"`
	Starred                        bool      `json:"starred"`
	Environment                    string    `json:"environment,omitempty"`
	AppVersion                     string    `json:"app_version,omitempty"`
	City                           string    `json:"city,omitempty"`
	State                          string    `json:"state,omitempty"`
	Postal                         string    `json:"postal,omitempty"`
	EnableRecordingNetworkContents bool      `json:"enable_recording_network_contents"`
	ObjectStorageEnabled           bool      `json:"object_storage_enabled"`
	PayloadSize                    int64     `json:"payload_size,omitempty"`
	ClientVersion                  string    `json:"client_version,omitempty"`
	Language                       string    `json:"language,omitempty"`
	Fields                         []Field   `json:"fields,omitempty"`
}

// Key returns the identifier sessions are cached and mutated under.
func (s *Session) Key() string {
	if s == nil {
		return ""
	}
	if s.SecureID != "" {
		return s.SecureID
	}
	return s.ID
}

// Clone returns a deep copy so callers can patch it without touching shared
// cache entries.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.Fields != nil {
		out.Fields = append([]Field(nil), s.Fields...)
	}
	return &out
}

// UnmarshalJSON accepts the fingerprint as either a JSON string or a number;
// the backend serves it as an integer while cached copies carry a string.
func (s *Session) UnmarshalJSON(data []byte) error {
	type sessionAlias Session
	aux := struct {
		*sessionAlias
		Fingerprint json.RawMessage `json:"fingerprint,omitempty"`
	}{sessionAlias: (*sessionAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	fingerprint, err := decodeFingerprint(aux.Fingerprint)
	if err != nil {
		return err
	}
	s.Fingerprint = fingerprint
	return nil
}

func decodeFingerprint(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", fmt.Errorf("fingerprint: %w", err)
		}
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return number.String(), nil
}
