package tcp

import "golang.org/x/sys/unix"

// inqRequest is the ioctl returning the bytes queued for reading
const inqRequest = unix.FIONREAD
