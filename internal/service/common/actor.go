//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"os/user"

	pb "github.com/oshokin/analog-timer/internal/pb/v1"
)

var errUnknownUser = errors.New("unable to detect the current user")

// DetectActor gathers host and user information for the audit trail.
// Returns the wire type because callers pass it directly to the client.
func DetectActor() (*pb.SystemActor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	username, err := currentUsername()
	if err != nil {
		return nil, err
	}

	return &pb.SystemActor{
		Hostname: hostname,
		Username: username,
	}, nil
}

// currentUsername falls back to the environment when the user database has no
// entry, which is common in containers.
func currentUsername() (string, error) {
	currentUser, err := user.Current()
	if err == nil && currentUser.Username != "" {
		return currentUser.Username, nil
	}

	for _, key := range []string{"USER", "USERNAME"} {
		if value := os.Getenv(key); value != "" {
			return value, nil
		}
	}

	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}

	return "", errUnknownUser
}
