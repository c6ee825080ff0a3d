package search

import "strings"

const maxQueryLength = 100

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns user input into a LIKE pattern that matches the input as a
// literal substring. Use with ESCAPE '\'. Returns "" for blank input.
func LikePattern(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > maxQueryLength {
		input = input[:maxQueryLength]
	}
	if input == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(input) + "%"
}
