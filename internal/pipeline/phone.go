package pipeline

import "strings"

// digitsOnly strips everything but ASCII digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// NormalizePhone converts a Turkish phone number to bare digits with
// the 90 country prefix: "+90 362 123 45 67" and "0362 123 45 67" both
// become "903621234567". Numbers that fit none of the known shapes are
// returned as their raw digits.
func NormalizePhone(s string) string {
	if s == "" {
		return ""
	}
	digits := digitsOnly(s)
	switch {
	case strings.HasPrefix(digits, "90") && len(digits) == 12:
		return digits
	case strings.HasPrefix(digits, "0") && len(digits) == 11:
		return "90" + digits[1:]
	case len(digits) == 10:
		return "90" + digits
	}
	return digits
}

// MessagingLink builds a wa.me deep link for the phone number, or ""
// when no usable number exists.
func MessagingLink(phone string) string {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return ""
	}
	return "https://wa.me/" + normalized
}
