/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package recordmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/nakomis/bootboots-sub001/otarecord"
)

type RecordMock struct {
	mock.Mock
}

func (rm *RecordMock) Read() (otarecord.UpdateRecord, error) {
	args := rm.Called()
	return args.Get(0).(otarecord.UpdateRecord), args.Error(1)
}

func (rm *RecordMock) SetPending(imageSize uint32) error {
	args := rm.Called(imageSize)
	return args.Error(0)
}

func (rm *RecordMock) ClearPending() error {
	args := rm.Called()
	return args.Error(0)
}
