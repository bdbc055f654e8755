package domain

// User is an owner of a task list on the remote API. Users are listed, never edited.
type User struct {
	Name string
}

// CloneUsers returns a copy of users that never aliases the input.
func CloneUsers(users []User) []User {
	out := make([]User, len(users))
	copy(out, users)
	return out
}

