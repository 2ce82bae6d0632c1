/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package client

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// TransferError means a network failure, timeout, disconnect or short
// read during a firmware transfer
type TransferError struct {
	cause error
}

func (e *TransferError) Cause() error {
	return e.cause
}

func (e *TransferError) Error() string {
	return errors.Wrapf(e.cause, "transfer error").Error()
}

func NewTransferError(err error) *TransferError {
	return &TransferError{cause: err}
}

// Fetcher describes the download of a firmware image. Implementations
// must return the declared content length along with the body.
type Fetcher interface {
	Fetch(url string) (io.ReadCloser, int64, error)
}

type FirmwareClient struct {
	http.Client
}

func NewFirmwareClient() *FirmwareClient {
	return &FirmwareClient{Client: http.Client{}}
}

// Fetch issues a GET for "url" and returns the body reader and the
// declared content length. A response without a known, non-zero length
// is rejected, since the update record tracks the image size out of
// band and must never be committed from a guess.
func (c *FirmwareClient) Fetch(url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, NewTransferError(err)
	}

	res, err := c.Do(req)
	if err != nil {
		return nil, 0, NewTransferError(err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, 0, NewTransferError(fmt.Errorf("firmware download returned status %d", res.StatusCode))
	}

	if res.ContentLength <= 0 {
		res.Body.Close()
		return nil, 0, NewTransferError(fmt.Errorf("firmware download has no declared content length"))
	}

	return res.Body, res.ContentLength, nil
}
