package tutor

import "github.com/saulo-duarte/lingua-lambda/internal/validation"

func validate(dto interface{}) error {
	return validation.Struct(dto)
}
