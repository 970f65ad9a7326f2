package domain

// Account is the signup/signin identity. The account identifier is also the
// primary key; Password always holds a hash, never the plaintext.
type Account struct {
	Account  string `db:"account"`
	Password string `db:"password"`
}
