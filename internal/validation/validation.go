// Package validation checks customer form input with go-playground/validator.
package validation

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/ticket-sales/internal/model"
	"github.com/iliyamo/ticket-sales/internal/repository"
)

var (
	// ErrMissingFields means at least one of the five customer fields is
	// empty after trimming.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidDate means date_of_birth is present but not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date of birth must be a valid date")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// CustomerForm is the add/edit customer form.  Text fields are trimmed by
// NewCustomerForm; DateOfBirth is kept exactly as submitted.
type CustomerForm struct {
	FirstName   string `form:"first_name" validate:"required"`
	FamilyName  string `form:"family_name" validate:"required"`
	DateOfBirth string `form:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email       string `form:"email" validate:"required"`
	Phone       string `form:"phone" validate:"required"`
}

// NewCustomerForm reads the five fields through get (typically
// echo.Context.FormValue) and trims the four text fields.
func NewCustomerForm(get func(string) string) CustomerForm {
	return CustomerForm{
		FirstName:   strings.TrimSpace(get("first_name")),
		FamilyName:  strings.TrimSpace(get("family_name")),
		DateOfBirth: get("date_of_birth"),
		Email:       strings.TrimSpace(get("email")),
		Phone:       strings.TrimSpace(get("phone")),
	}
}

// Validate returns ErrMissingFields when any field is empty, otherwise
// ErrInvalidDate when the date does not parse, otherwise nil.
func (f CustomerForm) Validate() error {
	err := GetValidator().Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidDate
}

// Customer converts a validated form into a model.Customer with the given id.
func (f CustomerForm) Customer(id uint64) (model.Customer, error) {
	dob, err := time.Parse(repository.DateLayout, f.DateOfBirth)
	if err != nil {
		return model.Customer{}, ErrInvalidDate
	}
	return model.Customer{
		ID:          id,
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: dob,
		Email:       f.Email,
		Phone:       f.Phone,
	}, nil
}
