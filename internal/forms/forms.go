// Package forms holds the validated dialog schemas. Records arrive from the
// backend with nested references; the forms are flat, so each schema has a
// constructor that derives its foreign-key fields from the nested shape.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/munivisitas/gateway/internal/domain"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the schema tags and reports per-field failures.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid form", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid form", details)
}

// LoginForm is the credentials schema.
type LoginForm struct {
	Handle   string `json:"user" validate:"required"`
	Password string `json:"password_hash" validate:"required"`
}

// SiteForm is the site dialog schema.
type SiteForm struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// OfficeForm is the office dialog schema.
type OfficeForm struct {
	Name   string `json:"name" validate:"required"`
	Floor  string `json:"floor" validate:"required"`
	SiteID string `json:"sedeId" validate:"required"`
}

// EmployeeForm is the employee dialog schema. The site field only drives the
// office selector; the backend keys the record by office.
type EmployeeForm struct {
	Name     string `json:"name" validate:"required"`
	SiteID   string `json:"sedeId" validate:"required"`
	OfficeID string `json:"officeId" validate:"required"`
}

// UserForm is the staff-account dialog schema. Password is required on
// create but may be left blank when editing.
type UserForm struct {
	Name     string `json:"name" validate:"required"`
	Handle   string `json:"user" validate:"required"`
	Password string `json:"password_hash" validate:"omitempty,min=4"`
	RoleID   string `json:"roleId" validate:"required"`
	OfficeID string `json:"officeId" validate:"required"`
}

// SiteFormFrom pre-populates the dialog from a selected record.
func SiteFormFrom(s domain.Site) SiteForm {
	return SiteForm{Name: s.Name, Address: s.Address}
}

// OfficeFormFrom pre-populates the dialog, flattening the site reference.
func OfficeFormFrom(o domain.Office) OfficeForm {
	form := OfficeForm{Name: o.Name, Floor: o.Floor}
	if o.Site != nil {
		form.SiteID = o.Site.ID
	}
	return form
}

// EmployeeFormFrom pre-populates the dialog, deriving the site from the
// nested office reference.
func EmployeeFormFrom(e domain.Employee) EmployeeForm {
	form := EmployeeForm{Name: e.Name}
	if e.Office != nil {
		form.OfficeID = e.Office.ID
		if e.Office.Site != nil {
			form.SiteID = e.Office.Site.ID
		}
	}
	return form
}

// UserFormFrom pre-populates the dialog from an account record.
func UserFormFrom(u domain.User) UserForm {
	form := UserForm{Name: u.Name, Handle: u.LoginHandle}
	if u.Role != nil {
		form.RoleID = u.Role.ID
	}
	if u.Office != nil {
		form.OfficeID = u.Office.ID
	}
	return form
}
