package service

import (
	"fmt"
	"os"
	"time"
)

// systemClock is the production [Clock].
type systemClock struct{}

// NewSystemClock returns a [Clock] backed by the system wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// configSourceLocator resolves the source directory from configuration,
// verifying it exists at resolution time.
type configSourceLocator struct {
	sourceDir string
}

// NewConfigSourceLocator returns a [SourceLocator] bound to the configured
// source directory.
func NewConfigSourceLocator(sourceDir string) SourceLocator {
	return &configSourceLocator{sourceDir: sourceDir}
}

// SourceDir implements [SourceLocator].
func (l *configSourceLocator) SourceDir() (string, error) {
	if l.sourceDir == "" {
		return "", fmt.Errorf("%w: no source directory configured", ErrSourceUnavailable)
	}
	info, err := os.Stat(l.sourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceUnavailable, l.sourceDir)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrSourceUnavailable, l.sourceDir)
	}
	return l.sourceDir, nil
}
