/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package flashermock

import (
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
)

type FlasherMock struct {
	mock.Mock
}

func (fm *FlasherMock) Apply(fsBackend afero.Fs, sourcePath string, imageSize uint32, progressChan chan<- int) error {
	args := fm.Called(fsBackend, sourcePath, imageSize, progressChan)
	return args.Error(0)
}
