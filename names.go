package pubsub

import (
	"fmt"
	"strings"
)

type resourceKind string

const (
	kindTopic        resourceKind = "topics"
	kindSubscription resourceKind = "subscriptions"
)

func (k resourceKind) singular() string {
	return strings.TrimSuffix(string(k), "s")
}

const absoluteNameSegments = 4

// resolveName normalizes a topic or subscription name to its absolute
// projects/<project>/<collection>/<name> form, which is the canonical form
// for every remote call. A name starting with "projects/" is treated as
// absolute and validated against the expected collection; anything else is
// treated as relative and qualified with the given project.
func resolveName(name, project string, kind resourceKind) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	if !strings.HasPrefix(name, "projects/") {
		return "projects/" + project + "/" + string(kind) + "/" + name, nil
	}

	parts := strings.Split(name, "/")
	if len(parts) != absoluteNameSegments || parts[1] == "" || parts[3] == "" {
		return "", fmt.Errorf("%w: %q is not of the form projects/<project>/%s/<name>", ErrInvalidName, name, kind)
	}

	if parts[2] != string(kind) {
		return "", fmt.Errorf("%w: %q is not a %s name", ErrInvalidName, name, kind.singular())
	}

	return name, nil
}

// relativeName strips the project qualification from an absolute name.
func relativeName(absolute string) string {
	parts := strings.Split(absolute, "/")

	return parts[len(parts)-1]
}
