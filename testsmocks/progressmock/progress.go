/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package progressmock

import (
	"github.com/stretchr/testify/mock"
)

type ProgressSinkMock struct {
	mock.Mock
}

func (psm *ProgressSinkMock) Report(percent int) {
	psm.Called(percent)
}
