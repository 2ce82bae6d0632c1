/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package utils

import (
	"errors"
	"io"
	"time"
)

// ChunkSize is the default transfer chunk size, in bytes
const ChunkSize = 128 * 1024

// DownloadChunkSize is the default chunk size for network transfers. It
// is kept small since the appliance shares a few hundred kilobytes of
// RAM between the download and the rest of the firmware.
const DownloadChunkSize = 4 * 1024

// Copier describes the chunked copy operation shared by the stager and
// the loader
type Copier interface {
	Copy(wr io.Writer, rd io.Reader, timeout time.Duration, cancel <-chan bool, chunkSize int, count int) (bool, error)
}

type ExtendedIO struct {
}

// Copy copies from rd to wr in chunkSize chunks until EOF, "count"
// chunks were copied (-1 means unlimited), the timeout is reached on a
// single read or it was cancelled. Returns whether it was cancelled
// along with the first error found, if any.
func (eio ExtendedIO) Copy(wr io.Writer, rd io.Reader, timeout time.Duration, cancel <-chan bool, chunkSize int, count int) (bool, error) {
	if chunkSize < 1 {
		return false, errors.New("Copy error: chunkSize can't be less than 1")
	}

	len := make(chan int)
	buf := make([]byte, chunkSize)
	readErrChan := make(chan error)

Loop:
	for i := 0; i != count; i++ {
		go func() {
			n, err := rd.Read(buf)
			if n == 0 && err != nil {
				if err != io.EOF {
					readErrChan <- err
				}
				close(len)
			} else {
				len <- n
			}
		}()

		select {
		case err, ok := <-readErrChan:
			if ok {
				close(readErrChan)
				return false, err
			}
		case _, ok := <-cancel:
			if ok {
				return true, nil
			}
		case <-time.After(timeout):
			return false, errors.New("timeout")
		case n, ok := <-len:
			if !ok {
				break Loop
			}

			_, err := wr.Write(buf[0:n])
			if err != nil {
				return false, err
			}
		}
	}

	return false, nil
}
