package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/munivisitas/gateway/internal/domain"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

func TestValidateReportsPerField(t *testing.T) {
	err := Validate(OfficeForm{Floor: "3"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Contains(t, domainErr.Details, "Name")
	require.Contains(t, domainErr.Details, "SiteID")
	require.NotContains(t, domainErr.Details, "Floor")
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	require.NoError(t, Validate(OfficeForm{Name: "Mesa de Partes", Floor: "1", SiteID: "s1"}))
	require.NoError(t, Validate(SiteForm{Name: "Sede Central", Address: "Av. Principal 100"}))
	require.NoError(t, Validate(LoginForm{Handle: "ana", Password: "secret"}))
}

func TestUserFormPasswordOptionalButBounded(t *testing.T) {
	base := UserForm{Name: "Ana", Handle: "ana", RoleID: "r1", OfficeID: "of-1"}
	require.NoError(t, Validate(base))

	base.Password = "abc"
	require.Error(t, Validate(base))

	base.Password = "abcd"
	require.NoError(t, Validate(base))
}

func TestFlattenNestedReferences(t *testing.T) {
	site := &domain.Site{ID: "s1", Name: "Sede Central"}
	office := &domain.Office{ID: "of-1", Name: "Mesa de Partes", Floor: "1", Site: site}

	officeForm := OfficeFormFrom(*office)
	require.Equal(t, "s1", officeForm.SiteID)

	employeeForm := EmployeeFormFrom(domain.Employee{ID: "f1", Name: "Carlos", Office: office})
	require.Equal(t, "s1", employeeForm.SiteID)
	require.Equal(t, "of-1", employeeForm.OfficeID)

	userForm := UserFormFrom(domain.User{
		ID:          "u1",
		Name:        "Ana",
		LoginHandle: "ana",
		Role:        &domain.RoleRef{ID: "r1", Name: "Asistente"},
		Office:      office,
	})
	require.Equal(t, "r1", userForm.RoleID)
	require.Equal(t, "of-1", userForm.OfficeID)
	require.Empty(t, userForm.Password, "stored hashes never flow back into the dialog")
}

func TestFlattenToleratesMissingReferences(t *testing.T) {
	require.Empty(t, OfficeFormFrom(domain.Office{Name: "Sin Sede"}).SiteID)
	require.Empty(t, EmployeeFormFrom(domain.Employee{Name: "Sin Oficina"}).OfficeID)
}

func TestOfficeSelectorDependentRule(t *testing.T) {
	sites := []domain.Site{
		{ID: "s1", Offices: []domain.Office{{ID: "of-1"}, {ID: "of-2"}}},
		{ID: "s2", Offices: []domain.Office{{ID: "of-9"}}},
	}

	sel := OfficeSelector{}.WithSite(sites, "s1").WithOffice("of-2")
	require.Equal(t, "of-2", sel.OfficeID)
	require.Len(t, sel.Options, 2)

	// Switching the parent clears the dependent choice and swaps options.
	sel = sel.WithSite(sites, "s2")
	require.Empty(t, sel.OfficeID)
	require.Len(t, sel.Options, 1)
	require.Equal(t, "of-9", sel.Options[0].ID)

	// A choice outside the option set is ignored.
	sel = sel.WithOffice("of-1")
	require.Empty(t, sel.OfficeID)
}
