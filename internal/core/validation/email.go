package validation

import (
	"net/mail"
	"strings"
)

// IsValidEmail проверяет адрес электронной почты.
// Адрес принимается, только если после разбора он совпадает с исходной строкой
// (без пробелов по краям): так отсекаются "Имя <a@b.c>", комментарии и т.п.
func IsValidEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" || strings.HasSuffix(trimmed, ".") {
		return false
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return false
	}
	return addr.Address == trimmed
}
