package domain

// User represents a registered customer or administrator.
//
// The password is stored exactly as supplied at sign-up; the persisted JSON
// documents are fixtures shared with the original dashboard, which models no
// hashing. The omitempty tag lets WithoutPassword strip it from responses.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

// RecordID returns the unique identifier used by the collection store.
func (u User) RecordID() string { return u.ID }

// WithoutPassword returns a copy of the user safe to return to clients.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
