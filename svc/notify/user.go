package notify

// UserType is the role of a storefront account.
type UserType string

const (
	UserTypeBuyer    UserType = "buyer"
	UserTypeSupplier UserType = "supplier"
	UserTypeAdmin    UserType = "admin"
)

// UserTypes is the fixed type-choice table. Admin notifications go to every
// user of type UserTypes[2].
var UserTypes = []UserType{UserTypeBuyer, UserTypeSupplier, UserTypeAdmin}

// Valid reports whether t is one of UserTypes.
func (t UserType) Valid() bool {
	for _, v := range UserTypes {
		if t == v {
			return true
		}
	}
	return false
}

// User is the read-only view of a storefront account.
type User struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Type  UserType `json:"type,omitempty"`
}
