package preferences

type UpdatePreferencesDTO struct {
	PromptForRereadsAfter int `json:"promptForRereadsAfter"`
}
