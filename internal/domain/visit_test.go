package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVisitOpenClassification(t *testing.T) {
	visit := Visit{ID: "v1", VisitorName: "Juan Pérez", CheckInTime: time.Now()}
	require.True(t, visit.Open())

	out := visit.CheckInTime.Add(30 * time.Minute)
	visit.CheckOutTime = &out
	require.False(t, visit.Open())
	require.False(t, visit.CheckOutTime.Before(visit.CheckInTime))
}

func TestValidReason(t *testing.T) {
	for _, reason := range VisitReasons {
		require.True(t, ValidReason(reason))
	}
	require.False(t, ValidReason("Otro"))
	require.False(t, ValidReason(""))
}

func TestSessionAuthenticated(t *testing.T) {
	var s Session
	require.False(t, s.Authenticated())

	s = Session{UserID: "u1", Role: RoleAdministrator, Name: "Ana"}
	require.True(t, s.Authenticated())
}

func TestPersonFullName(t *testing.T) {
	p := Person{FirstSurname: "García", SecondSurname: "Luna", GivenNames: "María Elena"}
	require.Equal(t, "García Luna María Elena", p.FullName())

	p = Person{GivenNames: "Solo"}
	require.Equal(t, "Solo", p.FullName())
}
