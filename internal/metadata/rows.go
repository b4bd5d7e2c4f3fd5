package metadata

import (
	"strings"

	"replayview/internal/types"
)

type RenderHint string

const (
	RenderString RenderHint = "string"
	RenderLink   RenderHint = "link"
)

const (
	defaultEnvironment   = "Production"
	defaultAppVersion    = "App Version Not Set"
	defaultIdentifier    = "Not Set"
	defaultLocale        = "Unknown"
	defaultClientVersion = "Unknown"
)

// Row is one line of a key/value table. Tooltip holds markdown help text and
// Link the navigation target for RenderLink rows.
type Row struct {
	Key     string
	Value   string
	Tooltip string
	Render  RenderHint
	Link    string
}

// Panel groups the three attribute tables of the metadata panel.
type Panel struct {
	Session []Row
	User    []Row
	Device  []Row
}

// LinkOptions locate the sessions list the device row links to.
type LinkOptions struct {
	BaseURL   string
	ProjectID string
}

// BuildPanel derives all rows for session. userFields is the already filtered
// list of user fields, normally supplied by a FieldMemo.
func BuildPanel(session *types.Session, viewer types.Viewer, userFields []types.Field, links LinkOptions) Panel {
	return Panel{
		Session: SessionRows(session, viewer),
		User:    UserRows(session, userFields),
		Device:  DeviceRows(session, links),
	}
}

func SessionRows(session *types.Session, viewer types.Viewer) []Row {
	if session == nil {
		return nil
	}
	rows := []Row{
		{
			Key:     "Environment",
			Value:   orDefault(session.Environment, defaultEnvironment),
			Tooltip: environmentHelp,
			Render:  RenderString,
		},
		{
			Key:     "App Version",
			Value:   orDefault(session.AppVersion, defaultAppVersion),
			Tooltip: appVersionHelp,
			Render:  RenderString,
		},
		{
			Key:     "Record Network Requests",
			Value:   enabledLabel(session.EnableRecordingNetworkContents),
			Tooltip: networkRecordingHelp,
			Render:  RenderString,
		},
	}
	if session.City != "" {
		rows = append(rows, Row{
			Key:    "Location",
			Value:  Location(session),
			Render: RenderString,
		})
	}
	// Visible to staff only.
	if viewer.Admin {
		if session.ObjectStorageEnabled {
			rows = append(rows, Row{
				Key:    "Session Size",
				Value:  FormatSize(session.PayloadSize),
				Render: RenderString,
			})
		}
		rows = append(rows, Row{
			Key:    "Firstload Version",
			Value:  orDefault(session.ClientVersion, defaultClientVersion),
			Render: RenderString,
		})
	}
	return rows
}

func UserRows(session *types.Session, userFields []types.Field) []Row {
	if session == nil {
		return nil
	}
	identifier := Row{
		Key:    "Identifier",
		Value:  orDefault(session.Identifier, defaultIdentifier),
		Render: RenderString,
	}
	if strings.TrimSpace(session.Identifier) == "" {
		identifier.Tooltip = identifierHelp
	}
	rows := []Row{
		identifier,
		{
			Key:    "Locale",
			Value:  orDefault(session.Language, defaultLocale),
			Render: RenderString,
		},
	}
	for _, field := range userFields {
		rows = append(rows, Row{
			Key:    field.Name,
			Value:  field.Value,
			Render: RenderString,
		})
	}
	return rows
}

func DeviceRows(session *types.Session, links LinkOptions) []Row {
	if session == nil || session.Fingerprint == "" {
		return nil
	}
	return []Row{{
		Key:    "Device ID",
		Value:  "#" + session.Fingerprint,
		Render: RenderLink,
		Link:   DeviceSessionsURL(links.BaseURL, links.ProjectID, session.Fingerprint),
	}}
}

// Location renders "{city}, {state} {postal}".
func Location(session *types.Session) string {
	if session == nil {
		return ""
	}
	return session.City + ", " + session.State + " " + session.Postal
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
