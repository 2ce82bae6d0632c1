/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"github.com/OSSystems/pkg/log"

	"github.com/nakomis/bootboots-sub001/bootsel"
)

// BootApplicationState is the State interface implementation for the
// ExecutorStateBootApplication
type BootApplicationState struct {
	BaseState
}

// Handle for BootApplicationState points the boot pointer at the
// application partition and resets. A failing pointer write is logged
// but the reset still happens: the hardware reset vector falls back to
// the partition that last ran.
func (state *BootApplicationState) Handle(e *Executor) State {
	err := e.BootSelector.SetBoot(bootsel.Application)
	if err != nil {
		log.Error("could not point the boot pointer at the application: ", err)
	}

	err = e.Reboot()
	if err != nil {
		log.Error(err)
	}

	return nil
}

// NewBootApplicationState creates a new BootApplicationState
func NewBootApplicationState() *BootApplicationState {
	state := &BootApplicationState{
		BaseState: BaseState{id: ExecutorStateBootApplication},
	}

	return state
}
