package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// enumerated 闭集枚举（ProjectStatus / IssueStatus / Priority）
type enumerated interface{ Valid() bool }

var (
	vOnce sync.Once
	v     *validator.Validate
)

func validate() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(enumerated)
			return ok && e.Valid()
		})
		// 只有空白字符也算空
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return v
}

// Validate 校验实体字段约束；失败返回 KindValidation，Details 为可读信息
func Validate(entity any) error {
	err := validate().Struct(entity)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Internal("validate", err)
	}
	details := make([]string, 0, len(ves))
	for _, fe := range ves {
		details = append(details, message(fe))
	}
	return ValidationError(details...)
}

func message(fe validator.FieldError) string {
	name := humanize(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return name + " can't be blank"
	case "min":
		return fmt.Sprintf("%s is too short (minimum is %s %s)", name, fe.Param(), characters(fe.Param()))
	case "max":
		return fmt.Sprintf("%s is too long (maximum is %s %s)", name, fe.Param(), characters(fe.Param()))
	case "email":
		return name + " is invalid"
	case "enum":
		return fmt.Sprintf("%s '%v' is not included in the list", name, fe.Value())
	}
	return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
}

func characters(n string) string {
	if n == "1" {
		return "character"
	}
	return "characters"
}

// humanize AvatarURL -> "Avatar url"
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(field[i-1])) {
			b.WriteByte(' ')
		}
		if i == 0 {
			b.WriteRune(r)
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
