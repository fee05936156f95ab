package domain

type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Session is the current identity. A nil User with an empty Token is the
// logged-out state.
type Session struct {
	User  *User
	Token string
}

func (s Session) LoggedIn() bool {
	return s.User != nil && s.Token != ""
}

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *string
}

func (p UserPatch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}
