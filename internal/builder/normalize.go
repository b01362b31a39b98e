package builder

import (
	"fmt"
	"regexp"
	"strings"
)

// taskRe matches task slugs that are safe to reuse as repository names.
//
//nolint: gochecknoglobals
var taskRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// maxTaskLength is the longest repository name GitHub accepts.
const maxTaskLength = 100

// NormalizeTask returns a canonical, validated representation of a task slug.
//
// The task doubles as the name of the repository the site is published to, so
// the rules follow what repository names allow:
//   - Trim surrounding whitespace and lower-case the slug
//   - The slug must start with a letter or digit and may only contain
//     letters, digits, dots, hyphens and underscores
//   - "." and ".." are rejected, as is a ".git" suffix
//   - The slug must not exceed 100 characters
//
// If the input does not satisfy these rules, an error is returned.
func NormalizeTask(raw string) (string, error) {
	task := strings.ToLower(strings.TrimSpace(raw))
	if task == "" {
		return "", fmt.Errorf("task is empty")
	}
	if len(task) > maxTaskLength {
		return "", fmt.Errorf("task exceeds %d characters", maxTaskLength)
	}
	if task == "." || task == ".." || strings.HasSuffix(task, ".git") {
		return "", fmt.Errorf("task %q is a reserved repository name", task)
	}
	if !taskRe.MatchString(task) {
		return "", fmt.Errorf("task %q contains characters not allowed in a repository name", task)
	}

	return task, nil
}
