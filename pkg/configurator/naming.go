package configurator

import (
	"time"

	"github.com/google/uuid"
)

// NamingPolicy produces the name of a configuration saved without one.
type NamingPolicy func(now time.Time) string

func TimestampNaming(now time.Time) string {
	return "Configuration " + now.Format("2006-01-02 15:04")
}

func UUIDNaming(time.Time) string {
	return "Configuration " + uuid.NewString()[:8]
}

// NamingByName maps a config value onto a policy, defaulting to timestamps.
func NamingByName(name string) NamingPolicy {
	if name == "uuid" {
		return UUIDNaming
	}
	return TimestampNaming
}
