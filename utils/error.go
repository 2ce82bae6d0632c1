/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package utils

import (
	"github.com/pkg/errors"
)

// StorageError means a file or partition write failed
type StorageError struct {
	cause error
}

func (e *StorageError) Cause() error {
	return e.cause
}

func (e *StorageError) Error() string {
	return errors.Wrapf(e.cause, "storage error").Error()
}

func NewStorageError(err error) *StorageError {
	return &StorageError{cause: err}
}
