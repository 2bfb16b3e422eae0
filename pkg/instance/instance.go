package instance

import "github.com/angelmondragon/bookstore-admin/pkg/env"

// GetID returns the process instance identifier used in startup logs.
// Platform-provided names win over the local default.
func GetID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := env.Get(key, ""); id != "" {
			return id
		}
	}
	return "local"
}
