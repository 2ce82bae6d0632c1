/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package copymock

import (
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type CopierMock struct {
	mock.Mock
}

func (cm *CopierMock) Copy(wr io.Writer, rd io.Reader, timeout time.Duration, cancel <-chan bool, chunkSize int, count int) (bool, error) {
	args := cm.Called(wr, rd, timeout, cancel, chunkSize, count)
	return args.Bool(0), args.Error(1)
}
