package user

import "strings"

type RegisterDTO struct {
	Email     string   `json:"email" validate:"required,email"`
	Username  string   `json:"username" validate:"required,min=2,max=64"`
	Languages []string `json:"languages" validate:"omitempty,dive,required"`
}

type UpdateDTO struct {
	Username  *string  `json:"username" validate:"omitempty,min=2,max=64"`
	Languages []string `json:"languages" validate:"omitempty,dive,required"`
}

func (d RegisterDTO) normalized() RegisterDTO {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Username = strings.TrimSpace(d.Username)
	if d.Languages != nil {
		d.Languages = normalizeLanguages(d.Languages)
	}
	return d
}

func (d UpdateDTO) normalized() UpdateDTO {
	if d.Username != nil {
		name := strings.TrimSpace(*d.Username)
		d.Username = &name
	}
	if d.Languages != nil {
		d.Languages = normalizeLanguages(d.Languages)
	}
	return d
}
