package usecase

// ValidateNationalID checks the national ID format used as the customer key:
// an optional nationality letter (V, E or J) followed by 6 to 9 digits.
func ValidateNationalID(id string) bool {
	if id == "" {
		return false
	}

	digits := id
	switch id[0] {
	case 'V', 'E', 'J':
		digits = id[1:]
	}

	if len(digits) < 6 || len(digits) > 9 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
