package models

// Session is the persisted sign-in state of the local variant. It is a
// plain record with no expiry; the server variant uses a signed JWT
// instead (see the auth package).
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	LoginTime string `json:"loginTime"`
}
