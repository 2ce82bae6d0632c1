/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package bootselmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/nakomis/bootboots-sub001/bootsel"
)

type BootSelectorMock struct {
	mock.Mock
}

func (bsm *BootSelectorMock) Boot() (bootsel.Partition, error) {
	args := bsm.Called()
	return args.Get(0).(bootsel.Partition), args.Error(1)
}

func (bsm *BootSelectorMock) SetBoot(p bootsel.Partition) error {
	args := bsm.Called(p)
	return args.Error(0)
}
