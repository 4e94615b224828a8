package models

// UserProfile is the single account profile record. Exactly one instance
// exists; the remote server is the source of truth.
type UserProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

// PlaceholderProfile is shown until the first profile fetch completes.
func PlaceholderProfile() UserProfile {
	return UserProfile{
		Name:     "John Doe",
		Email:    "john.doe@example.com",
		Bio:      "Travel enthusiast exploring the world one destination at a time.",
		Location: "New York, USA",
	}
}
