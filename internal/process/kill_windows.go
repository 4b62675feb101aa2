//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillGroup force-kills pid and its child processes.
func KillGroup(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
