package model

// User is a member of the library who can hold loans.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Category is a read model for catalog navigation: one shelf grouping with
// the number of titles currently filed under it.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
