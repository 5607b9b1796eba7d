package user

// Record is one registered account: the name and the hex digest of the
// password. The plain password is never stored.
type Record struct {
	Name         string
	PasswordHash string
}
