package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrNotRunning is returned by Running when no live daemon owns the file
var ErrNotRunning = errors.New("daemon is not running")

// PIDFile guards the resolver daemon against running twice on one host
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current PID. A file left by a dead process is replaced;
// a file owned by a live process is an error.
func (p *PIDFile) Acquire() error {
	pid, err := p.Running()
	switch {
	case err == nil:
		return fmt.Errorf("daemon is already running (PID %d)", pid)
	case errors.Is(err, ErrNotRunning):
		_ = os.Remove(p.path)
	default:
		return err
	}

	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Running returns the PID recorded in the file if that process is alive
func (p *PIDFile) Running() (int, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return 0, ErrNotRunning
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, ErrNotRunning
	}
	if !isProcessRunning(pid) {
		return 0, ErrNotRunning
	}
	return pid, nil
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Hold acquires the file, runs fn and releases the file whatever fn returns.
// Callers exit only after Hold returns, so no stale file is left behind.
func (p *PIDFile) Hold(fn func() error) error {
	if err := p.Acquire(); err != nil {
		return err
	}
	runErr := fn()
	if err := p.Release(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// isProcessRunning sends signal 0 to pid
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// Exists but owned by another user
		return true
	default:
		return false
	}
}
