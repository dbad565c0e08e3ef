package model

// Identity names a caller either by numeric user id or by email.
//
// Every service operation resolves its caller through this one value, so
// there is a single identity-resolution path instead of parallel
// by-email and by-id lookups.
type Identity struct {
	id    int64
	email string
}

// IdentityByID builds an Identity from a numeric user id.
func IdentityByID(id int64) Identity {
	return Identity{id: id}
}

// IdentityByEmail builds an Identity from an email address.
func IdentityByEmail(email string) Identity {
	return Identity{email: email}
}

// ID returns the numeric id and whether the identity carries one.
func (i Identity) ID() (int64, bool) {
	return i.id, i.id != 0
}

// Email returns the email and whether the identity carries one.
func (i Identity) Email() (string, bool) {
	return i.email, i.email != ""
}

// IsZero reports whether the identity names nobody.
func (i Identity) IsZero() bool {
	return i.id == 0 && i.email == ""
}
