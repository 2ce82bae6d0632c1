/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nakomis/bootboots-sub001/testsmocks/bootselmock"
	"github.com/nakomis/bootboots-sub001/testsmocks/flashermock"
	"github.com/nakomis/bootboots-sub001/testsmocks/rebootermock"
	"github.com/nakomis/bootboots-sub001/testsmocks/recordmock"
	"github.com/nakomis/bootboots-sub001/utils"
)

func TestStateFlashClearsTheRecordBeforeWriting(t *testing.T) {
	memFs := afero.NewMemMapFs()
	settings := DefaultSettings()

	image := bytes.Repeat([]byte("f"), 1000)
	err := afero.WriteFile(memFs, settings.StagingPath, image, 0644)
	assert.NoError(t, err)

	callOrder := []string{}

	rm := &recordmock.RecordMock{}
	rm.On("ClearPending").Run(func(args mock.Arguments) {
		callOrder = append(callOrder, "ClearPending")
	}).Return(nil).Once()

	fm := &flashermock.FlasherMock{}
	fm.On("Apply", memFs, settings.StagingPath, uint32(1000), mock.AnythingOfType("chan<- int")).Run(func(args mock.Arguments) {
		callOrder = append(callOrder, "Apply")
	}).Return(nil).Once()

	e := NewExecutor(memFs, settings, rm, &bootselmock.BootSelectorMock{}, fm, &rebootermock.RebooterMock{})

	nextState := NewFlashState(1000).Handle(e)
	assert.IsType(t, &BootApplicationState{}, nextState)

	// no partition byte may be written while the record still reads
	// pending
	assert.Equal(t, []string{"ClearPending", "Apply"}, callOrder)

	// the staging file was consumed
	exists, _ := afero.Exists(memFs, settings.StagingPath)
	assert.False(t, exists)

	rm.AssertExpectations(t)
	fm.AssertExpectations(t)
}

func TestStateFlashWithSizeMismatchBootsTheOldFirmware(t *testing.T) {
	memFs := afero.NewMemMapFs()
	settings := DefaultSettings()

	err := afero.WriteFile(memFs, settings.StagingPath, bytes.Repeat([]byte("f"), 300), 0644)
	assert.NoError(t, err)

	rm := &recordmock.RecordMock{}
	rm.On("ClearPending").Return(nil).Once()

	// the flasher must never run for a file known to be wrong
	fm := &flashermock.FlasherMock{}

	e := NewExecutor(memFs, settings, rm, &bootselmock.BootSelectorMock{}, fm, &rebootermock.RebooterMock{})

	nextState := NewFlashState(1000).Handle(e)
	assert.IsType(t, &BootApplicationState{}, nextState)

	exists, _ := afero.Exists(memFs, settings.StagingPath)
	assert.False(t, exists)

	rm.AssertExpectations(t)
	fm.AssertExpectations(t)
}

func TestStateFlashWithMissingStagingFile(t *testing.T) {
	memFs := afero.NewMemMapFs()
	settings := DefaultSettings()

	rm := &recordmock.RecordMock{}
	rm.On("ClearPending").Return(nil).Once()

	fm := &flashermock.FlasherMock{}

	e := NewExecutor(memFs, settings, rm, &bootselmock.BootSelectorMock{}, fm, &rebootermock.RebooterMock{})

	nextState := NewFlashState(1000).Handle(e)
	assert.IsType(t, &BootApplicationState{}, nextState)

	rm.AssertExpectations(t)
	fm.AssertExpectations(t)
}

func TestStateFlashWithRecordClearFailure(t *testing.T) {
	memFs := afero.NewMemMapFs()
	settings := DefaultSettings()

	err := afero.WriteFile(memFs, settings.StagingPath, bytes.Repeat([]byte("f"), 1000), 0644)
	assert.NoError(t, err)

	rm := &recordmock.RecordMock{}
	rm.On("ClearPending").Return(fmt.Errorf("store unavailable")).Once()

	// flashing must not start without a durably cleared record
	fm := &flashermock.FlasherMock{}

	e := NewExecutor(memFs, settings, rm, &bootselmock.BootSelectorMock{}, fm, &rebootermock.RebooterMock{})

	nextState := NewFlashState(1000).Handle(e)
	assert.IsType(t, &BootApplicationState{}, nextState)

	rm.AssertExpectations(t)
	fm.AssertExpectations(t)
}

func TestStateFlashWithPartitionWriteFailure(t *testing.T) {
	memFs := afero.NewMemMapFs()
	settings := DefaultSettings()

	err := afero.WriteFile(memFs, settings.StagingPath, bytes.Repeat([]byte("f"), 1000), 0644)
	assert.NoError(t, err)

	rm := &recordmock.RecordMock{}
	rm.On("ClearPending").Return(nil).Once()

	fm := &flashermock.FlasherMock{}
	fm.On("Apply", memFs, settings.StagingPath, uint32(1000), mock.AnythingOfType("chan<- int")).Return(utils.NewStorageError(fmt.Errorf("write error"))).Once()

	// the boot pointer is left alone: the loader runs again on the
	// next reset and takes the fast path over the cleared record
	bsm := &bootselmock.BootSelectorMock{}

	e := NewExecutor(memFs, settings, rm, bsm, fm, &rebootermock.RebooterMock{})

	nextState := NewFlashState(1000).Handle(e)
	assert.IsType(t, &ResetState{}, nextState)

	rm.AssertExpectations(t)
	fm.AssertExpectations(t)
	bsm.AssertExpectations(t)
}

type inflatedStatFs struct {
	afero.Fs
	size int64
}

func (fs *inflatedStatFs) Stat(name string) (os.FileInfo, error) {
	info, err := fs.Fs.Stat(name)
	if err != nil {
		return nil, err
	}

	return &inflatedFileInfo{FileInfo: info, size: fs.size}, nil
}

type inflatedFileInfo struct {
	os.FileInfo
	size int64
}

func (fi *inflatedFileInfo) Size() int64 {
	return fi.size
}

func TestStateFlashWithOverflowingStagingFileBootsTheOldFirmware(t *testing.T) {
	memFs := afero.NewMemMapFs()
	settings := DefaultSettings()

	err := afero.WriteFile(memFs, settings.StagingPath, []byte("f"), 0644)
	assert.NoError(t, err)

	// the file is 2^32 bytes bigger than the record says; truncating
	// the size to 32 bits would make it look like a match
	store := &inflatedStatFs{Fs: memFs, size: int64(1000) + (1 << 32)}

	rm := &recordmock.RecordMock{}
	rm.On("ClearPending").Return(nil).Once()

	// the flasher must never run for a file known to be wrong
	fm := &flashermock.FlasherMock{}

	e := NewExecutor(store, settings, rm, &bootselmock.BootSelectorMock{}, fm, &rebootermock.RebooterMock{})

	nextState := NewFlashState(1000).Handle(e)
	assert.IsType(t, &BootApplicationState{}, nextState)

	exists, _ := afero.Exists(memFs, settings.StagingPath)
	assert.False(t, exists)

	rm.AssertExpectations(t)
	fm.AssertExpectations(t)
}
