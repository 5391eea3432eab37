package user

type GoogleLoginDTO struct {
	Code string `json:"code"`
}

type UpdateLeadershipPurposeDTO struct {
	Purpose string `json:"purpose"`
}

type UpdatePadletURLDTO struct {
	PadletURL string `json:"padlet_url"`
}
