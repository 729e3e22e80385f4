package appointment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
)

func TestSanitizePlate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abc1d23", "ABC1D23"},
		{"ABC-1D23", "ABC1D23"},
		{"abc 1234", "ABC1234"},
		{"  aBc.12-34 ", "ABC1234"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.SanitizePlate(tc.in), "entrada %q", tc.in)
	}
}

func TestIsValidPlate(t *testing.T) {
	valid := []string{"ABC1234", "ABC1D23", "XYZ9Z99"}
	for _, p := range valid {
		assert.True(t, domain.IsValidPlate(p), p)
	}

	invalid := []string{
		"",
		"ABC123",    // curta
		"ABC12345",  // longa
		"1BC1234",   // começa com dígito
		"ABCD234",   // letra na posição do primeiro dígito
		"ABC1D2X",   // letra na última posição
		"abc1d23",   // minúscula (sanitizar antes)
		"ABC-1234",  // hífen (sanitizar antes)
	}
	for _, p := range invalid {
		assert.False(t, domain.IsValidPlate(p), p)
	}
}
