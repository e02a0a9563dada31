package dtos

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/constants"
	"github.com/comfortcurators/portal/pkg/intl"
)

type LoginDTO struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Next     string
}

func (d *LoginDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return validate(ctx, "Login", d)
}

type SignUpDTO struct {
	FullName string `validate:"required,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
}

func (d *SignUpDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	return validate(ctx, "SignUp", d)
}

func (d *SignUpDTO) ToParams() services.SignUpParams {
	return services.SignUpParams{
		FullName: d.FullName,
		Email:    d.Email,
		Password: d.Password,
	}
}

// validate translates validation failures into per-field messages. Field labels are looked
// up under prefix, e.g. "Login.Email".
func validate(ctx context.Context, prefix string, dto any) (map[string]string, bool) {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return errorMessages, true
	}
	l, ok := intl.UseLocalizer(ctx)
	if !ok {
		panic(intl.ErrNoLocalizer)
	}
	for _, err := range errs.(validator.ValidationErrors) {
		translatedFieldName := l.MustLocalize(&i18n.LocalizeConfig{
			MessageID: fmt.Sprintf("%s.%s", prefix, err.Field()),
		})
		errorMessages[err.Field()] = l.MustLocalize(&i18n.LocalizeConfig{
			MessageID: fmt.Sprintf("ValidationErrors.%s", err.Tag()),
			TemplateData: map[string]string{
				"Field": translatedFieldName,
				"Param": err.Param(),
			},
		})
	}
	return errorMessages, len(errorMessages) == 0
}
