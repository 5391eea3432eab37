package theme

type CreateThemeDTO struct {
	ThemeText          string `json:"theme_text"`
	SuccessDescription string `json:"success_description"`
}

type UpdateThemeNameDTO struct {
	ThemeText string `json:"theme_text"`
}

type UpdateSuccessDescriptionDTO struct {
	SuccessDescription string `json:"success_description"`
}

type CreatedThemeDTO struct {
	ID string `json:"id"`
}
