/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package rebootermock

import (
	"github.com/stretchr/testify/mock"
)

type RebooterMock struct {
	mock.Mock
}

func (rm *RebooterMock) Reboot() error {
	args := rm.Called()
	return args.Error(0)
}
