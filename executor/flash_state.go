/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"fmt"

	"github.com/OSSystems/pkg/log"
)

// FlashState is the State interface implementation for the
// ExecutorStateFlash
type FlashState struct {
	BaseState

	imageSize uint32
}

// Handle for FlashState validates the staging file against the record
// and writes it into the application partition.
//
// The record is cleared before the first partition byte is written. If
// power is lost mid-write, the next boot reads "not pending" and takes
// the fast path, booting whatever is physically in the partition,
// instead of looping forever re-flashing a file that may no longer be
// reliably readable. The cost is that such a power loss can leave the
// application partition half written; that residual risk is accepted.
func (state *FlashState) Handle(e *Executor) State {
	stat, err := e.Store.Stat(e.Settings.StagingPath)
	if err != nil {
		log.Error(NewSizeMismatchError(fmt.Errorf("staging file unreadable: %s", err)))
		return state.discard(e)
	}

	if stat.Size() != int64(state.imageSize) {
		log.Error(NewSizeMismatchError(fmt.Errorf("staging file has %d bytes, record says %d", stat.Size(), state.imageSize)))
		return state.discard(e)
	}

	err = e.Record.ClearPending()
	if err != nil {
		// without a durably cleared record the flash must not start,
		// or a mid-write power loss would re-enter FLASH forever
		log.Error("could not clear the update record, booting the installed firmware: ", err)
		return NewBootApplicationState()
	}

	progressChan := make(chan int, 10)

	go func() {
		for p := range progressChan {
			log.Info("flashing: ", p, "%")
		}
	}()

	err = e.Flasher.Apply(e.Store, e.Settings.StagingPath, state.imageSize, progressChan)
	close(progressChan)

	if err != nil {
		// the record is already clear; the next boot takes the fast
		// path over whatever the partition now holds
		log.Error("partition write failed: ", err)
		return NewResetState()
	}

	e.Store.Remove(e.Settings.StagingPath)

	log.Info("staged update flashed successfully")

	return NewBootApplicationState()
}

// discard drops an invalid staged update and boots the known-good old
// firmware rather than flashing a file known to be wrong
func (state *FlashState) discard(e *Executor) State {
	err := e.Record.ClearPending()
	if err != nil {
		log.Error("could not clear the update record: ", err)
	}

	e.Store.Remove(e.Settings.StagingPath)

	return NewBootApplicationState()
}

// NewFlashState creates a new FlashState for a staged image of
// imageSize bytes
func NewFlashState(imageSize uint32) *FlashState {
	state := &FlashState{
		BaseState: BaseState{id: ExecutorStateFlash},
		imageSize: imageSize,
	}

	return state
}
