/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"github.com/OSSystems/pkg/log"
)

// CheckState is the State interface implementation for the
// ExecutorStateCheck
type CheckState struct {
	BaseState
}

// Handle for CheckState reads the update record and decides between
// the fast path (boot whatever is installed) and flashing a staged
// update. An unreadable record is treated as not pending: the device
// must never be steered toward a re-flash by a broken store.
func (state *CheckState) Handle(e *Executor) State {
	record, err := e.Record.Read()
	if err != nil {
		log.Warn("update record unreadable, taking the fast boot path: ", err)
		return NewBootApplicationState()
	}

	if !record.Pending {
		return NewBootApplicationState()
	}

	log.Info("staged update found. (image-size: ", record.ImageSize, ")")

	return NewFlashState(record.ImageSize)
}

// NewCheckState creates a new CheckState
func NewCheckState() *CheckState {
	state := &CheckState{
		BaseState: BaseState{id: ExecutorStateCheck},
	}

	return state
}
