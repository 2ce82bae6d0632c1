/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package stager

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nakomis/bootboots-sub001/testsmocks/cmdlinemock"
)

func TestCmdLineQuiescerSuspend(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "bootboots-quiesce suspend").Return([]byte(""), nil)

	q := &CmdLineQuiescer{CmdLineExecuter: clm}

	err := q.Suspend()

	assert.NoError(t, err)

	clm.AssertExpectations(t)
}

func TestCmdLineQuiescerSuspendWithExecuteError(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "bootboots-quiesce suspend").Return([]byte("pipeline busy"), fmt.Errorf("exit status 1"))

	q := &CmdLineQuiescer{CmdLineExecuter: clm}

	err := q.Suspend()

	assert.EqualError(t, err, "failed to suspend subsystems: pipeline busy: exit status 1")

	clm.AssertExpectations(t)
}

func TestCmdLineQuiescerResume(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "bootboots-quiesce resume").Return([]byte(""), nil)

	q := &CmdLineQuiescer{CmdLineExecuter: clm}

	err := q.Resume()

	assert.NoError(t, err)

	clm.AssertExpectations(t)
}

func TestCmdLineQuiescerResumeWithExecuteError(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "bootboots-quiesce resume").Return([]byte(""), fmt.Errorf("exit status 1"))

	q := &CmdLineQuiescer{CmdLineExecuter: clm}

	err := q.Resume()

	assert.EqualError(t, err, "failed to resume subsystems: : exit status 1")

	clm.AssertExpectations(t)
}
