package partner

import (
	"strings"

	"github.com/smartsales/backend/internal/domain/shared"
)

// ErrInvalidCPF is returned when a CPF fails normalization or its checksum
var ErrInvalidCPF = shared.NewDomainError("INVALID_CPF", "Invalid CPF")

// NormalizeCPF strips formatting characters from a Brazilian CPF and
// validates it, returning the bare 11-digit form.
//
// A CPF is valid when it has exactly 11 digits, is not a run of a single
// repeated digit, and both check digits match the modulo-11 checksum.
func NormalizeCPF(cpf string) (string, error) {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) != 11 {
		return "", ErrInvalidCPF
	}
	if strings.Count(digits, digits[:1]) == 11 {
		return "", ErrInvalidCPF
	}

	// Check digits at positions 9 and 10. Each is computed over the
	// preceding digits with descending weights starting at i+1.
	for i := 9; i < 11; i++ {
		sum := 0
		for num := 0; num < i; num++ {
			sum += int(digits[num]-'0') * ((i + 1) - num)
		}
		check := (sum * 10 % 11) % 10
		if check != int(digits[i]-'0') {
			return "", ErrInvalidCPF
		}
	}

	return digits, nil
}

// IsValidCPF reports whether the given CPF passes checksum validation
func IsValidCPF(cpf string) bool {
	_, err := NormalizeCPF(cpf)
	return err == nil
}
