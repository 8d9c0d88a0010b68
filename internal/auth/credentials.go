package auth

// Credential is one static login record.  Passwords are stored and
// compared in plaintext.
type Credential struct {
	ID       int64
	Username string
	Password string
	Role     Role
	Name     string
	Email    string
}

// Credentials is the static login list, scanned linearly.
type Credentials []Credential

// DefaultCredentials is the built-in console login list.
var DefaultCredentials = Credentials{
	{ID: 1, Username: "admin", Password: "admin123", Role: RoleAdmin, Name: "Admin User", Email: "admin@google.com"},
	{ID: 2, Username: "john.doe", Password: "user123", Role: RoleUser, Name: "John Doe", Email: "john.doe@google.com"},
	{ID: 3, Username: "jane.smith", Password: "user123", Role: RoleUser, Name: "Jane Smith", Email: "jane.smith@google.com"},
	{ID: 4, Username: "guest", Password: "guest123", Role: RoleGuest, Name: "Guest User", Email: "guest@google.com"},
}

// Lookup returns the first credential matching username and password
// exactly.
func (cs Credentials) Lookup(username, password string) (Credential, bool) {
	for _, c := range cs {
		if c.Username == username && c.Password == password {
			return c, true
		}
	}
	return Credential{}, false
}
