// Package platform holds the process-wide "running inside the mini-program"
// flag. It is set once at startup and only read afterwards.
package platform

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

// EnvVar is the environment variable the flag is exported as.
const EnvVar = "MINIPROGRAM"

var (
	once    sync.Once
	enabled atomic.Bool
)

// Enable sets the flag and exports it to the environment. Only the first call
// has an effect.
func Enable() error {
	var err error

	once.Do(func() {
		enabled.Store(true)
		err = os.Setenv(EnvVar, "true")
	})

	return err
}

// Enabled reports whether the flag is set, either by Enable or by the
// environment the process started with.
func Enabled() bool {
	if enabled.Load() {
		return true
	}

	v, _ := strconv.ParseBool(os.Getenv(EnvVar))

	return v
}

// Defines returns the compile-time constants a host build should substitute.
func Defines() map[string]string {
	return map[string]string{
		"process.env." + EnvVar: strconv.Quote(strconv.FormatBool(Enabled())),
	}
}
