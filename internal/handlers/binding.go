package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gravadigital/proagil-api/internal/response"
	"github.com/gravadigital/proagil-api/internal/validation"
)

// RegisterValidations installs the custom binding rules on gin's validator
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("notblank", notBlank)
}

// notBlank rejects strings made only of whitespace
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// pathID parses a positive integer path parameter, writing a 400 when it is not one
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := validation.ValidateID(c.Param(name), name)
	if err != nil {
		response.BadRequestError(c, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// queryFlag reads an optional boolean query parameter, writing a 400 when it does not parse
func queryFlag(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	flag, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequestError(c, "Invalid "+name, fmt.Errorf("%s must be true or false", name))
		return false, false
	}
	return flag, true
}
