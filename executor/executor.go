/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/nakomis/bootboots-sub001/bootsel"
	"github.com/nakomis/bootboots-sub001/flash"
	"github.com/nakomis/bootboots-sub001/otarecord"
	"github.com/nakomis/bootboots-sub001/utils"
)

// SizeMismatchError means the staging file size disagrees with the
// update record
type SizeMismatchError struct {
	cause error
}

func (e *SizeMismatchError) Cause() error {
	return e.cause
}

func (e *SizeMismatchError) Error() string {
	return errors.Wrapf(e.cause, "size mismatch error").Error()
}

func NewSizeMismatchError(err error) *SizeMismatchError {
	return &SizeMismatchError{cause: err}
}

// Executor is the whole of the loader program: it runs unconditionally
// on every reset, before anything else, and either hands over to the
// application right away or flashes a staged update first. It is
// strictly single threaded and every terminal state ends in a reset.
// One instance exists per device.
type Executor struct {
	Store        afero.Fs
	Settings     *Settings
	Record       otarecord.Interface
	BootSelector bootsel.Interface
	Flasher      flash.Interface
	utils.Rebooter

	state State
}

func NewExecutor(
	fs afero.Fs,
	settings *Settings,
	record otarecord.Interface,
	selector bootsel.Interface,
	flasher flash.Interface,
	rebooter utils.Rebooter) *Executor {

	return &Executor{
		Store:        fs,
		Settings:     settings,
		Record:       record,
		BootSelector: selector,
		Flasher:      flasher,
		Rebooter:     rebooter,
		state:        NewCheckState(),
	}
}

// GetState returns the executor state
func (e *Executor) GetState() State {
	return e.state
}

// Run drives the state machine until a terminal state has issued the
// reset
func (e *Executor) Run() {
	for e.state != nil {
		log.Info("handling state: ", StateToString(e.state.ID()))

		e.state = e.state.Handle(e)
	}
}
