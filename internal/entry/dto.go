package entry

type CreateEntryDTO struct {
	FA               *int `json:"fa"`
	EH               *int `json:"eh"`
	NewAppointments  *int `json:"new_appointments"`
	Recommendations  *int `json:"recommendations"`
	TIVInvitations   *int `json:"tiv_invitations"`
	TAAInvitations   *int `json:"taa_invitations"`
	TGSRegistrations *int `json:"tgs_registrations"`
	BAVChecks        *int `json:"bav_checks"`

	Highlight string   `json:"highlight"`
	Obstacle  string   `json:"obstacle"`
	Todos     []string `json:"todos"`
	TodosDone []bool   `json:"todos_done"`
}
