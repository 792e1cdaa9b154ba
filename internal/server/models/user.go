package models

import "time"

// Gender values accepted at registration.
const (
	GenderMale   = "m"
	GenderFemale = "f"
	GenderOther  = "o"
)

// User is a registered storefront account. PasswordHash never leaves the server.
type User struct {
	ID           string     `json:"userId"`
	Email        string     `json:"email"`
	UserName     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Gender       string     `json:"gender"`
	Birthday     *time.Time `json:"birthday"`
	Phone        *string    `json:"phone"`
	MobilePhone  *string    `json:"mobilePhone"`
	FromStore    *string    `json:"fromStore"`
	IntroducedBy *string    `json:"introducedBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserUpdate is a staged partial update of a User.
//
// UserName and Email are written only when non-nil. Birthday is written only
// when SetBirthday is true, a nil Birthday then clears it. The contact fields
// are always written and nil clears them.
type UserUpdate struct {
	UserName     *string
	Email        *string
	SetBirthday  bool
	Birthday     *time.Time
	Phone        *string
	MobilePhone  *string
	FromStore    *string
	IntroducedBy *string
}
