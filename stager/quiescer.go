/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package stager

import (
	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"

	"github.com/nakomis/bootboots-sub001/utils"
)

// CmdLineQuiescer drives the platform hooks that park the camera
// pipeline and the command-bus connection so their RAM is available to
// the transfer
type CmdLineQuiescer struct {
	utils.CmdLineExecuter
}

func NewCmdLineQuiescer() *CmdLineQuiescer {
	return &CmdLineQuiescer{CmdLineExecuter: &utils.CmdLine{}}
}

func (q *CmdLineQuiescer) Suspend() error {
	log.Info("suspending camera subsystems for the transfer")

	output, err := q.Execute("bootboots-quiesce suspend")
	if err != nil {
		return errors.Wrapf(err, "failed to suspend subsystems: %s", string(output))
	}

	return nil
}

func (q *CmdLineQuiescer) Resume() error {
	log.Info("resuming camera subsystems")

	output, err := q.Execute("bootboots-quiesce resume")
	if err != nil {
		return errors.Wrapf(err, "failed to resume subsystems: %s", string(output))
	}

	return nil
}
