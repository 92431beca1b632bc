package user

// User represents a user record as served by the users API.
type User struct {
	ID    int64  `json:"id"`    // ID is assigned by the server on create
	Name  string `json:"name"`  // Name is the full name of the user
	Email string `json:"email"` // Email is the contact address of the user
}

// Input is the body of create and update calls. The server assigns the ID.
type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
