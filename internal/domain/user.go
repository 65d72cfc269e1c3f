package domain

// UserProfile holds the fields merged into a user document over the
// registration flow. Registration writes the email and password hash;
// the additional-information step merges in the rest and flips
// IsVerified. Zero-valued fields are omitted so a partial write never
// clobbers fields set by an earlier merge.
type UserProfile struct {
	EmailID      string `firestore:"emailId,omitempty" json:"emailId,omitempty"`
	PasswordHash string `firestore:"passwordHash,omitempty" json:"-"`
	Name         string `firestore:"name,omitempty" json:"name,omitempty"`
	Age          int    `firestore:"age,omitempty" json:"age,omitempty"`
	Gender       string `firestore:"gender,omitempty" json:"gender,omitempty"`
	PhoneNumber  string `firestore:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	IsVerified   bool   `firestore:"isVerified,omitempty" json:"isVerified,omitempty"`
}

// Contact is a payee the user has previously paid, stored under the
// registeredUsersData collection for quick re-selection.
type Contact struct {
	Name        string `firestore:"name" json:"name"`
	PhoneNumber string `firestore:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	VPA         string `firestore:"vpa,omitempty" json:"vpa,omitempty"`
}
