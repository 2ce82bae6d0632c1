/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package quiescermock

import (
	"github.com/stretchr/testify/mock"
)

type QuiescerMock struct {
	mock.Mock
}

func (qm *QuiescerMock) Suspend() error {
	args := qm.Called()
	return args.Error(0)
}

func (qm *QuiescerMock) Resume() error {
	args := qm.Called()
	return args.Error(0)
}
