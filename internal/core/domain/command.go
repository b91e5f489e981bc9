package domain

import "strings"

// HasPrefix reports whether content is led by a non-empty prefix.
func HasPrefix(content, prefix string) bool {
	return prefix != "" && strings.HasPrefix(content, prefix)
}

// ParseCommand strips the prefix and splits the remaining content on whitespace. The first token is the
// candidate command name, returned as received; the rest are its arguments.
func ParseCommand(content, prefix string) (string, []string) {
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", []string{}
	}

	return fields[0], fields[1:]
}

// JoinArgs rebuilds the argument text of a command.
func JoinArgs(args []string) string {
	return strings.Join(args, " ")
}
