package tutor

import "strings"

type StartConversationDTO struct {
	Language string `json:"language" validate:"required,max=64"`
	Message  string `json:"message" validate:"required"`
	Level    string `json:"level"`
}

type SendMessageDTO struct {
	Content string `json:"content" validate:"required"`
}

type SubmitResultsDTO struct {
	Results map[string]interface{} `json:"results" validate:"required"`
}

type PromptDTO struct {
	Text string `json:"text" validate:"required"`
}

func (d StartConversationDTO) normalized() StartConversationDTO {
	d.Language = strings.TrimSpace(d.Language)
	d.Message = strings.TrimSpace(d.Message)
	d.Level = strings.TrimSpace(d.Level)
	return d
}

func (d SendMessageDTO) normalized() SendMessageDTO {
	d.Content = strings.TrimSpace(d.Content)
	return d
}

func (d PromptDTO) normalized() PromptDTO {
	d.Text = strings.TrimSpace(d.Text)
	return d
}
