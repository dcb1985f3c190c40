package domain

// Identity is the authenticated caller as supplied by the session collaborator.
// It is passed explicitly into every service call; nothing reads it from
// process-wide state.
type Identity struct {
	CI      string `json:"ci"`
	IsAdmin bool   `json:"is_admin"`
}
