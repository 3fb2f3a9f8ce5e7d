package domain

// Session is the authenticated identity as held by the gateway. The backend
// owns credentials; the gateway only keeps this record between login and
// logout.
type Session struct {
	UserID     string `json:"userId"`
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	SiteName   string `json:"siteName"`
	OfficeName string `json:"officeName"`
	OfficeID   string `json:"officeId"`
}

// Authenticated reports whether the record carries an identity. A zero
// Session is anonymous; login is the only transition that fills it.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}
