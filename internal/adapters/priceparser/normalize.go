package priceparser

import (
	"regexp"
	"strings"
)

var markupPattern = regexp.MustCompile(`<[^>]+>|&nbsp;`)

// неразрывный, узкий неразрывный и цифровой пробелы
var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2007", " ")

// NormalizePrice убирает теги и неразрывные пробелы и обрезает пробелы по краям.
// Остальные символы (м², ½, полноширинные цифры) не трогаются.
func NormalizePrice(raw string) string {
	cleaned := markupPattern.ReplaceAllString(raw, " ")
	cleaned = spaceReplacer.Replace(cleaned)
	return strings.TrimSpace(cleaned)
}
