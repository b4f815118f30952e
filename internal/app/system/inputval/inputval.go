// internal/app/system/inputval/inputval.go

// Package inputval validates decoded request payloads with struct tags.
//
// Besides the stock validator tags, payload structs may use:
//
//	ekskul       a known club slug
//	ymd          a YYYY-MM-DD date
//	hhmm         a 24-hour HH:MM time
//	achlevel     an achievement level
//	attstatus    an attendance status
//	memberstatus "active" or "inactive"
package inputval

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid field, keyed by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by Struct when one or more fields fail validation.
type Errors struct {
	Fields []FieldError `json:"fields"`
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("ekskul", func(fl validator.FieldLevel) bool {
			return ekskul.IsValid(fl.Field().String())
		})
		_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsValidClock(fl.Field().String())
		})
		_ = v.RegisterValidation("achlevel", func(fl validator.FieldLevel) bool {
			return models.IsAchievementLevel(fl.Field().String())
		})
		_ = v.RegisterValidation("attstatus", func(fl validator.FieldLevel) bool {
			return models.IsAttendanceStatus(fl.Field().String())
		})
		_ = v.RegisterValidation("memberstatus", func(fl validator.FieldLevel) bool {
			return models.IsMemberStatus(fl.Field().String())
		})
	})
	return v
}

// Struct validates s. A nil return means every tag passed; otherwise the
// error is an *Errors listing each failing field.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &Errors{Fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// IsValidEmail reports whether s looks like a deliverable email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return false
	}
	return engine().Var(s, "email") == nil
}

// IsValidClock reports whether s is a 24-hour HH:MM time.
func IsValidClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "email":
		return "format email tidak valid"
	case "max":
		return "maksimal " + fe.Param() + " karakter"
	case "min":
		return "minimal " + fe.Param() + " karakter"
	case "url":
		return "format URL tidak valid"
	case "ekskul":
		return "ekskul tidak dikenal"
	case "ymd":
		return "format tanggal harus YYYY-MM-DD"
	case "hhmm":
		return "format jam harus HH:MM"
	case "achlevel":
		return "tingkat prestasi tidak dikenal"
	case "attstatus":
		return "status kehadiran tidak dikenal"
	case "memberstatus":
		return "status harus active atau inactive"
	case "mongodb":
		return "ID tidak valid"
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	default:
		return "nilai tidak valid"
	}
}
