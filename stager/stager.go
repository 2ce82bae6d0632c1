/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package stager

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync/atomic"

	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/nakomis/bootboots-sub001/client"
	"github.com/nakomis/bootboots-sub001/otarecord"
	"github.com/nakomis/bootboots-sub001/utils"
)

// ErrBusy is returned by Start while another update is in flight
var ErrBusy = errors.New("another update is already in progress")

// ErrCancelled is returned by Start when the transfer was aborted
// through Cancel
var ErrCancelled = errors.New("update cancelled")

// ProgressSink receives coarse staging progress, in percent
type ProgressSink interface {
	Report(percent int)
}

// Quiescer suspends the memory-hungry subsystems that share RAM with a
// firmware download (camera pipeline, command-bus connection) and
// brings them back when the application keeps running
type Quiescer interface {
	Suspend() error
	Resume() error
}

// Stager streams a firmware image from a URL into the staging file on
// removable storage, commits the update record and reboots into the
// loader. One instance exists per device.
type Stager struct {
	Store       afero.Fs
	Settings    *Settings
	Record      otarecord.Interface
	Fetcher     client.Fetcher
	CopyBackend utils.Copier
	utils.Rebooter
	Quiescer Quiescer
	Progress ProgressSink

	busy   uint32
	cancel chan bool
}

func NewStager(
	fs afero.Fs,
	settings *Settings,
	record otarecord.Interface,
	fetcher client.Fetcher,
	rebooter utils.Rebooter,
	quiescer Quiescer,
	progress ProgressSink) *Stager {

	return &Stager{
		Store:       fs,
		Settings:    settings,
		Record:      record,
		Fetcher:     fetcher,
		CopyBackend: utils.ExtendedIO{},
		Rebooter:    rebooter,
		Quiescer:    quiescer,
		Progress:    progress,
		cancel:      make(chan bool, 1),
	}
}

// InProgress tells whether an update is currently being staged
func (s *Stager) InProgress() bool {
	return atomic.LoadUint32(&s.busy) == 1
}

// Cancel aborts an in-flight transfer; the partial staging file is
// deleted and the old firmware keeps running. It has no effect once
// the record has been committed.
func (s *Stager) Cancel() {
	select {
	case s.cancel <- true:
	default:
	}
}

// Start stages the firmware image at "url" and, once the update record
// has durably committed, reboots into the loader. It returns ErrBusy
// right away if another update is in flight. Any failure before the
// record commit is recovered locally: the partial staging file is
// deleted, the record is left untouched and no reboot happens.
func (s *Stager) Start(version string, url string) error {
	if !atomic.CompareAndSwapUint32(&s.busy, 0, 1) {
		log.Warn("update request rejected, another update is already in progress")
		return ErrBusy
	}
	defer atomic.StoreUint32(&s.busy, 0)

	// drop a cancel left over from a previous attempt
	select {
	case <-s.cancel:
	default:
	}

	log.Info(fmt.Sprintf("staging firmware update %s. (url: %s)", version, url))

	if s.Quiescer != nil {
		if err := s.Quiescer.Suspend(); err != nil {
			log.Warn("failed to quiesce subsystems before download: ", err)
		}
	}

	size, err := s.stage(url)
	if err != nil {
		s.Store.Remove(s.Settings.StagingPath)

		if s.Quiescer != nil {
			if resumeErr := s.Quiescer.Resume(); resumeErr != nil {
				log.Warn("failed to resume subsystems after staging failure: ", resumeErr)
			}
		}

		log.Error("staging failed: ", err)

		return err
	}

	log.Info(fmt.Sprintf("firmware update %s staged successfully. (size: %d)", version, size))
	log.Info("rebooting into the loader")

	return s.Reboot()
}

// stage transfers the image into the staging file and commits the
// record. The record is only ever written after the staging file is
// complete and closed, so a crash at any byte offset leaves the record
// non-pending.
func (s *Stager) stage(url string) (uint32, error) {
	rd, size, err := s.Fetcher.Fetch(url)
	if err != nil {
		return 0, err
	}
	defer rd.Close()

	if size <= 0 {
		return 0, client.NewTransferError(fmt.Errorf("declared image size %d is not usable", size))
	}

	if size > math.MaxUint32 {
		return 0, client.NewTransferError(fmt.Errorf("declared image size %d does not fit the update record", size))
	}

	target, err := s.Store.OpenFile(s.Settings.StagingPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, utils.NewStorageError(err)
	}

	pw := &progressWriter{target: target, total: size, sink: s.Progress}

	cancelled, err := s.CopyBackend.Copy(pw, rd, s.Settings.ReadTimeout, s.cancel, s.Settings.ChunkSize, -1)

	if cancelled {
		target.Close()
		return 0, ErrCancelled
	}

	if err != nil {
		target.Close()

		if pw.writeErr != nil {
			return 0, utils.NewStorageError(pw.writeErr)
		}

		return 0, client.NewTransferError(err)
	}

	if pw.written != size {
		target.Close()
		return 0, client.NewTransferError(fmt.Errorf("transfer ended after %d of %d bytes", pw.written, size))
	}

	err = target.Close()
	if err != nil {
		return 0, utils.NewStorageError(err)
	}

	err = s.Record.SetPending(uint32(size))
	if err != nil {
		return 0, err
	}

	return uint32(size), nil
}

// progressWriter counts the bytes flowing into the staging file and
// reports every completed 10% through the sink
type progressWriter struct {
	target       io.Writer
	total        int64
	written      int64
	lastReported int
	writeErr     error
	sink         ProgressSink
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.target.Write(p)
	pw.written += int64(n)

	if err != nil {
		pw.writeErr = err
		return n, err
	}

	percent := int(pw.written * 100 / pw.total)
	if percent/10 > pw.lastReported/10 {
		pw.lastReported = percent

		if pw.sink != nil {
			pw.sink.Report(percent)
		}
	}

	return n, err
}
