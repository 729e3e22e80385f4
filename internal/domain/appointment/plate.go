package appointment

import (
	"regexp"
	"strings"
)

// Placas no padrão regional de 7 caracteres: Mercosul ABC1D23 e o
// formato anterior ABC1234.
var plateRx = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

// SanitizePlate normaliza para maiúsculas e remove tudo que não for
// alfanumérico ("abc-1d23" -> "ABC1D23").
func SanitizePlate(plate string) string {
	upper := strings.ToUpper(plate)
	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPlate valida a placa já normalizada.
func IsValidPlate(plate string) bool {
	return plateRx.MatchString(plate)
}
