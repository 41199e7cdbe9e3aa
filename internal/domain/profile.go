package domain

// ProfileRole is the role a user presents inside rooms. It is display
// data and has no bearing on platform authorization.
type ProfileRole string

const (
	ProfileRoleClient     ProfileRole = "client"
	ProfileRoleAdmin      ProfileRole = "admin"
	ProfileRoleConsultant ProfileRole = "consultant"
	ProfileRoleEngineer   ProfileRole = "engineer"
	ProfileRoleAnalyst    ProfileRole = "analyst"
)

// Profile represents a user's public profile.
type Profile struct {
	DisplayName string      `json:"display_name"`
	Role        ProfileRole `json:"role"`
}

// SaveProfileRequest creates or fully replaces the caller's profile.
type SaveProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=64"`
	Role        string `json:"role" binding:"required,oneof=client admin consultant engineer analyst"`
}

// ParticipantProfile pairs a room participant with their saved profile.
type ParticipantProfile struct {
	CallerID string  `json:"caller_id"`
	Profile  Profile `json:"profile"`
}
