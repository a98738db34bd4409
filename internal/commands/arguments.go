package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRepoArg splits an "owner/repo" argument.
func ParseRepoArg(arg string) (string, string, error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected OWNER/REPO, got %q", arg)
	}
	return parts[0], parts[1], nil
}

// ParseNumberArg parses a positive integer argument such as an issue or
// PR number.
func ParseNumberArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %q", arg)
	}
	return n, nil
}

// ParseRunIDArg parses a workflow run id argument.
func ParseRunIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("expected a workflow run id, got %q", arg)
	}
	return id, nil
}
