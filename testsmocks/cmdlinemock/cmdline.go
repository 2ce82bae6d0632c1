/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package cmdlinemock

import (
	"github.com/stretchr/testify/mock"
)

type CmdLineExecuterMock struct {
	mock.Mock
}

func (clem *CmdLineExecuterMock) Execute(cmdline string) ([]byte, error) {
	args := clem.Called(cmdline)
	return args.Get(0).([]byte), args.Error(1)
}
