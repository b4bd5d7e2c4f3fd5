package client

import "replayview/internal/types"

const sessionFields = `id
		secure_id
		created_at
		identifier
		fingerprint
		browser_name
		browser_version
		os_name
		os_version
		starred
		environment
		app_version
		city
		state
		postal
		enable_recording_network_contents
		object_storage_enabled
		payload_size
		client_version
		language
		fields {
			type
			name
			value
		}`

const getSessionQuery = `query GetSession($secure_id: String!) {
	session(secure_id: $secure_id) {
		` + sessionFields + `
	}
}`

const markSessionAsStarredMutation = `mutation MarkSessionAsStarred($secure_id: String!, $starred: Boolean!) {
	markSessionAsStarred(secure_id: $secure_id, starred: $starred) {
		id
		secure_id
		starred
	}
}`

const getAdminQuery = `query GetAdmin {
	admin {
		id
		email
	}
}`

type sessionResponse struct {
	Session *types.Session `json:"session"`
}

type markSessionAsStarredResponse struct {
	Session *types.Session `json:"markSessionAsStarred"`
}

type adminResponse struct {
	Admin *adminNode `json:"admin"`
}

type adminNode struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
