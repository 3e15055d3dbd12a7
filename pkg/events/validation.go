package events

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("present", func(fl validator.FieldLevel) bool {
			return isPresent(fl.Field().String())
		})
		validate.RegisterStructValidation(trackIdentifiers, TrackOptions{})
		validate.RegisterStructValidation(conversionIdentifiers, ConversionOptions{})
	})
	return validate
}

func isPresent(s string) bool {
	return strings.TrimSpace(s) != ""
}

func trackIdentifiers(sl validator.StructLevel) {
	o := sl.Current().Interface().(TrackOptions)
	if isPresent(o.VisitorID) || isPresent(o.UserID) {
		return
	}
	sl.ReportError(o.VisitorID, "VisitorID", "VisitorID", "identifier", "")
}

func conversionIdentifiers(sl validator.StructLevel) {
	o := sl.Current().Interface().(ConversionOptions)
	if isPresent(o.EventID) || isPresent(o.VisitorID) || isPresent(o.UserID) {
		return
	}
	sl.ReportError(o.VisitorID, "VisitorID", "VisitorID", "identifier", "")
}

func check(sentinel error, opts any) error {
	if err := getValidator().Struct(opts); err != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return nil
}

// ValidateTrack requires an event type and a visitor or user id.
func ValidateTrack(o TrackOptions) error { return check(ErrInvalidTrack, o) }

// ValidateConversion requires a conversion type and an event, visitor or user id.
func ValidateConversion(o ConversionOptions) error { return check(ErrInvalidConversion, o) }

// ValidateIdentify requires a user id.
func ValidateIdentify(o IdentifyOptions) error { return check(ErrInvalidIdentify, o) }

// ValidateSession requires visitor id, session id and url.
func ValidateSession(o SessionOptions) error { return check(ErrInvalidSession, o) }
