/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package fetchermock

import (
	"io"

	"github.com/stretchr/testify/mock"
)

type FetcherMock struct {
	mock.Mock
}

func (fm *FetcherMock) Fetch(url string) (io.ReadCloser, int64, error) {
	args := fm.Called(url)

	rd := args.Get(0)
	if rd == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return rd.(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}
