package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// InitValidation configures the global validator used by Gin's binding so
// error messages name fields by their JSON tag.
func InitValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindingErrors converts a binding failure into the `{errors:[{msg,param}]}`
// wire shape the client expects.
func bindingErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, gin.H{"msg": fieldErrorMessage(fe), "param": fe.Field()})
		}
		return gin.H{"errors": out}
	}
	return gin.H{"errors": []gin.H{{"msg": "Invalid request payload"}}}
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// validationError builds the same wire shape for checks done outside the
// binding layer.
func validationError(msg, param string) gin.H {
	e := gin.H{"msg": msg}
	if param != "" {
		e["param"] = param
	}
	return gin.H{"errors": []gin.H{e}}
}
