package store

// User is a registered traveler account.
type User struct {
	ID           int32
	UID          string // external UUID
	Email        string
	Nickname     string
	PasswordHash string
	CreatedTs    int64
}

type FindUser struct {
	ID    *int32
	UID   *string
	Email *string
}

type UpdateUser struct {
	ID           int32
	Nickname     *string
	PasswordHash *string
}

type DeleteUser struct {
	ID int32
}

// UserProfile holds the traveler details shared with the local-info agent.
type UserProfile struct {
	UserID            int32
	BloodGroup        string
	HealthConditions  string
	Allergies         string
	FoodPreferences   string
	TravelPreferences string
	PreferredLanguage string
	EmergencyName     string
	EmergencyPhone    string
}

type FindUserProfile struct {
	UserID int32
}
