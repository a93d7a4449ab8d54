//go:build linux || darwin

package tcp

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddrControl sets SO_REUSEADDR before the socket is bound
func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var serr error
	err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return serr
}

// available asks the kernel for the number of buffered bytes (TIOCINQ on
// linux, FIONREAD on darwin).
// If that fails a zero timeout poll tells at least whether data is ready.
func available(conn *net.TCPConn) int {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0
	}

	n := -1
	_ = raw.Control(func(fd uintptr) {
		v, err := unix.IoctlGetInt(int(fd), inqRequest)
		if err == nil {
			n = v
			return
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if ready, err := unix.Poll(fds, 0); err == nil && ready > 0 && fds[0].Revents&unix.POLLIN != 0 {
			n = 1
		}
	})
	if n < 0 {
		return 0
	}
	return n
}
