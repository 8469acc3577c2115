package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	app_errors "chatbench/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once

	// repoIDPattern matches Hub repository ids such as "Qwen/Qwen3-0.6B-GGUF".
	repoIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*/[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("repoid", func(fl validator.FieldLevel) bool {
			return repoIDPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// validateRequest checks payload against its `validate` tags and returns an
// app_errors.ErrValidation listing every failed field.
func validateRequest(payload any) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(messages, "; "))
}
