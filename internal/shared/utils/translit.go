package utils

import "strings"

// cyrillicToLatin follows the reversed Russian transliteration scheme used for slugs.
// Hard and soft signs produce nothing.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "ju", 'я': "ja",

	// Ukrainian and Belarusian letters that show up in names
	'і': "i", 'ї': "ji", 'є': "je", 'ґ': "g", 'ў': "u",
}

// Transliterate replaces Cyrillic letters with Latin ones and lowercases the result.
// Runes outside the table pass through unchanged.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if lat, ok := cyrillicToLatin[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
