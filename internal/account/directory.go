package account

// Directory maps usernames to accounts for the lifetime of one session. It is
// an explicitly constructed session-scoped object, not process-global state,
// and is not safe for concurrent use: the interactive shell is the only
// mutator.
type Directory struct {
	accounts map[string]*Account
}

func NewDirectory() *Directory {
	return &Directory{accounts: make(map[string]*Account)}
}

// Register creates a new account. Fails with ErrDuplicateUsername when the
// username already exists; no persistence side effect.
func (d *Directory) Register(username, password string) (*Account, error) {
	if _, exists := d.accounts[username]; exists {
		return nil, ErrDuplicateUsername
	}
	a, err := New(username, password)
	if err != nil {
		return nil, err
	}
	d.accounts[username] = a
	return a, nil
}

// Authenticate returns the account for username when password matches.
// Fails with ErrUnknownUser or ErrWrongPassword.
func (d *Directory) Authenticate(username, password string) (*Account, error) {
	a, ok := d.accounts[username]
	if !ok {
		return nil, ErrUnknownUser
	}
	if !a.CheckPassword(password) {
		return nil, ErrWrongPassword
	}
	return a, nil
}

// Lookup returns the account for username, if present.
func (d *Directory) Lookup(username string) (*Account, bool) {
	a, ok := d.accounts[username]
	return a, ok
}

// Install inserts the account, replacing any in-memory entry under the same
// username. Used when a snapshot is loaded.
func (d *Directory) Install(a *Account) {
	d.accounts[a.Username] = a
}

func (d *Directory) Len() int {
	return len(d.accounts)
}
