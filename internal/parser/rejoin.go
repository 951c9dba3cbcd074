package parser

import "strings"

// Rejoin rebuilds the logical clauses of an entry body from its physical lines.
// A line that starts with a clause marker opens a new clause; any other line is
// a soft-wrapped continuation and is appended to the open clause with a space.
func Rejoin(lines []string) []string {
	var clauses []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		clauses = append(clauses, strings.Join(current, " "))
		current = nil
	}

	for _, line := range lines {
		if startsClause(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return clauses
}
