package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kartikahlawat/Taks-manager/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report config keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the config and returns a CONFIG error naming the first
// invalid key.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config",
			"Check your .taskmanager.yaml")
	}

	fe := validationErrors[0]
	key := configKey(fe)
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Invalid value for '%s': %v", key, fe.Value()),
		messageFor(key, fe))
}

// configKey turns "Config.log.format" into "log.format".
func configKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(key string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s.", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s.", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required_if":
		return fmt.Sprintf("%s is required while logging is enabled. Set it or disable logging with --no-log.", key)
	case "ltefield":
		return fmt.Sprintf("%s must not be longer than interval.", key)
	default:
		return fmt.Sprintf("%s is invalid.", key)
	}
}
