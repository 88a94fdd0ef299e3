package utils

import "strings"

func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
