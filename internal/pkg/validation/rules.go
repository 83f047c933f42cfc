package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/futureintern/platform/internal/pkg/auth"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// Register installs the custom rules on gin's validator engine.
// Field errors report json names so they match the request body.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonTagName)
		err = v.RegisterValidation("password", validatePassword)
	})
	return err
}

func validatePassword(fl validator.FieldLevel) bool {
	return auth.ValidatePasswordStrength(fl.Field().String()) == nil
}

func jsonTagName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
