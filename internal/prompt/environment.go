package prompt

import (
	"errors"
	"runtime"
)

// UnknownOS is substituted for the operating system name when the
// environment cannot report it.
const UnknownOS = "Unknown"

// ErrEnvironmentUnavailable is returned by an EnvironmentProvider that cannot
// determine the host operating system.
var ErrEnvironmentUnavailable = errors.New("environment query unavailable")

// EnvironmentProvider reports facts about the host the prompt is rendered on.
type EnvironmentProvider interface {
	OSName() (string, error)
}

var osFamilies = map[string]string{
	"aix":       "AIX",
	"android":   "Linux",
	"darwin":    "Darwin",
	"dragonfly": "DragonFly",
	"freebsd":   "FreeBSD",
	"illumos":   "SunOS",
	"ios":       "Darwin",
	"linux":     "Linux",
	"netbsd":    "NetBSD",
	"openbsd":   "OpenBSD",
	"plan9":     "Plan9",
	"solaris":   "SunOS",
	"windows":   "Windows",
}

// HostEnvironment reports the operating system the binary was built for.
// GOOS is overridable for tests; an empty value means runtime.GOOS.
type HostEnvironment struct {
	GOOS string
}

func (h HostEnvironment) OSName() (string, error) {
	goos := h.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	name, ok := osFamilies[goos]
	if !ok {
		return "", ErrEnvironmentUnavailable
	}
	return name, nil
}

// StaticEnvironment always reports the same OS name.
type StaticEnvironment string

func (s StaticEnvironment) OSName() (string, error) {
	if s == "" {
		return "", ErrEnvironmentUnavailable
	}
	return string(s), nil
}
