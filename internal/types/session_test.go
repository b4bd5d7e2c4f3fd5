package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKeyPrefersSecureID(t *testing.T) {
	assert.Equal(t, "abc", (&Session{ID: "1", SecureID: "abc"}).Key())
	assert.Equal(t, "1", (&Session{ID: "1"}).Key())
	var nilSession *Session
	assert.Equal(t, "", nilSession.Key())
}

func TestSessionCloneCopiesFields(t *testing.T) {
	original := &Session{SecureID: "s1", Fields: []Field{{Type: FieldTypeUser, Name: "plan", Value: "pro"}}}
	clone := original.Clone()
	require.NotNil(t, clone)

	clone.Fields[0].Value = "free"
	clone.Starred = true

	assert.Equal(t, "pro", original.Fields[0].Value)
	assert.False(t, original.Starred)
}

func TestSessionDecodesFingerprint(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "number", body: `{"secure_id":"s1","fingerprint":991}`, want: "991"},
		{name: "string", body: `{"secure_id":"s1","fingerprint":"991"}`, want: "991"},
		{name: "null", body: `{"secure_id":"s1","fingerprint":null}`, want: ""},
		{name: "missing", body: `{"secure_id":"s1"}`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var session Session
			require.NoError(t, json.Unmarshal([]byte(tc.body), &session))
			assert.Equal(t, "s1", session.SecureID)
			assert.Equal(t, tc.want, session.Fingerprint)
		})
	}
}

func TestSessionRejectsNonScalarFingerprint(t *testing.T) {
	var session Session
	assert.Error(t, json.Unmarshal([]byte(`{"fingerprint":{"a":1}}`), &session))
}

func TestSessionFingerprintSurvivesRoundTrip(t *testing.T) {
	var decoded Session
	require.NoError(t, json.Unmarshal([]byte(`{"secure_id":"s1","starred":true,"fingerprint":42}`), &decoded))
	encoded, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"fingerprint":"42"`)

	var again Session
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, "42", again.Fingerprint)
	assert.True(t, again.Starred)
}
