package metadata

import (
	"net/url"
	"strings"
)

// DeviceIDParam is the sessions list query parameter filtering by device.
const DeviceIDParam = "device_id"

// DeviceSessionsURL links to the sessions list filtered to one device.
func DeviceSessionsURL(baseURL, projectID, fingerprint string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path := "/sessions"
	if project := strings.Trim(strings.TrimSpace(projectID), "/"); project != "" {
		path = "/" + url.PathEscape(project) + path
	}
	query := url.Values{DeviceIDParam: []string{fingerprint}}
	return base + path + "?" + query.Encode()
}
