/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package otarecord

import (
	"bytes"
	"os"
	"path"

	"github.com/OSSystems/pkg/log"
	"github.com/go-ini/ini"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	recordFilename     = "update"
	recordTempFilename = "update.new"
)

// UpdateRecord is the only state shared between the loader and the
// application, coordinating them across resets. Pending true implies a
// staging file of exactly ImageSize bytes exists on removable storage.
type UpdateRecord struct {
	Pending   bool   `ini:"Pending"`
	ImageSize uint32 `ini:"ImageSize"`
}

// Interface describes the operations on the persistent update record
type Interface interface {
	Read() (UpdateRecord, error)
	SetPending(imageSize uint32) error
	ClearPending() error
}

// DefaultImpl keeps the record as an ini file inside a dedicated
// directory of the power-loss-safe filesystem. Writes go to a temporary
// file first and are renamed over the record, so a crash at any instant
// leaves either the old record or the new one, never a mix.
type DefaultImpl struct {
	Store afero.Fs
	Dir   string
}

// RecordError means the persistent store could not be read or written
type RecordError struct {
	cause error
}

func (e *RecordError) Cause() error {
	return e.cause
}

func (e *RecordError) Error() string {
	return errors.Wrapf(e.cause, "update record error").Error()
}

func NewRecordError(err error) *RecordError {
	return &RecordError{cause: err}
}

func NewDefaultImpl(store afero.Fs, dir string) *DefaultImpl {
	return &DefaultImpl{Store: store, Dir: dir}
}

// Read returns the current record. Whenever the backing store is
// unavailable or the record is unparseable it returns a non-pending
// record along with a RecordError, failing safe toward a normal boot.
func (di *DefaultImpl) Read() (UpdateRecord, error) {
	record := UpdateRecord{}

	data, err := afero.ReadFile(di.Store, path.Join(di.Dir, recordFilename))
	if os.IsNotExist(err) {
		// manufactured state, no update was ever staged
		return record, nil
	}

	if err != nil {
		return UpdateRecord{}, NewRecordError(err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return UpdateRecord{}, NewRecordError(err)
	}

	err = cfg.Section("Update").MapTo(&record)
	if err != nil {
		return UpdateRecord{}, NewRecordError(err)
	}

	return record, nil
}

// SetPending durably records that a complete staged image of imageSize
// bytes is ready to be flashed on the next reset
func (di *DefaultImpl) SetPending(imageSize uint32) error {
	log.Debug("committing update record. (image-size: ", imageSize, ")")

	return di.write(UpdateRecord{Pending: true, ImageSize: imageSize})
}

// ClearPending durably marks the record as consumed
func (di *DefaultImpl) ClearPending() error {
	log.Debug("clearing update record")

	return di.write(UpdateRecord{})
}

func (di *DefaultImpl) write(record UpdateRecord) error {
	err := di.Store.MkdirAll(di.Dir, 0755)
	if err != nil {
		return NewRecordError(err)
	}

	cfg := ini.Empty()

	err = cfg.Section("Update").ReflectFrom(&record)
	if err != nil {
		return NewRecordError(err)
	}

	var buf bytes.Buffer
	_, err = cfg.WriteTo(&buf)
	if err != nil {
		return NewRecordError(err)
	}

	tempPath := path.Join(di.Dir, recordTempFilename)

	err = afero.WriteFile(di.Store, tempPath, buf.Bytes(), 0644)
	if err != nil {
		return NewRecordError(err)
	}

	err = di.Store.Rename(tempPath, path.Join(di.Dir, recordFilename))
	if err != nil {
		di.Store.Remove(tempPath)
		return NewRecordError(err)
	}

	return nil
}

func init() {
	ini.PrettyFormat = false
}
