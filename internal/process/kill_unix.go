//go:build !windows

package process

import "syscall"

// KillGroup sends SIGKILL to the process group led by pid.
func KillGroup(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
