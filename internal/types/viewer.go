package types

// Viewer describes who is looking at the player page.
type Viewer struct {
	LoggedIn bool   `json:"logged_in"`
	Admin    bool   `json:"admin"`
	Email    string `json:"email,omitempty"`
}
