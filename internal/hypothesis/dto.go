package hypothesis

type AddHypothesisDTO struct {
	Text string `json:"text"`
}

type AddWeeklyActionsDTO struct {
	Actions []string `json:"actions"`
}

type UpdateTextDTO struct {
	Text string `json:"text"`
}

type ToggleCompleteDTO struct {
	IsCompleted bool `json:"is_completed"`
}

type CreatedActionDTO struct {
	ID string `json:"id"`
}
