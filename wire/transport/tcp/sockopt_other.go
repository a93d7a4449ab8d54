//go:build !linux && !darwin

package tcp

import (
	"net"
	"syscall"
)

// reuseAddrControl is a no-op where SO_REUSEADDR is not set explicitly
func reuseAddrControl(_, _ string, _ syscall.RawConn) error {
	return nil
}

// available has no portable implementation here and always reports 0
func available(_ *net.TCPConn) int {
	return 0
}
