package validation

import (
	"net/url"
	"strings"
	"unicode"
)

// DefaultTrustedPrefix - единственный сайт, на страницы которого можно подписаться.
const DefaultTrustedPrefix = "https://prinzip.su/"

// IsWellFormedLink проверяет ссылку без сетевых запросов:
// префикс доверенного сайта и корректный абсолютный URI.
// Доступность ссылки проверяется отдельно, через port.LinkProberPort.
func IsWellFormedLink(link, trustedPrefix string) bool {
	if trustedPrefix == "" {
		trustedPrefix = DefaultTrustedPrefix
	}
	if !strings.HasPrefix(link, trustedPrefix) {
		return false
	}
	return isWellFormedAbsoluteURI(link)
}

func isWellFormedAbsoluteURI(raw string) bool {
	for _, r := range raw {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune("\"<>\\^`{|}", r) {
			return false
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
