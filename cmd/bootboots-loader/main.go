/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package main

import (
	"os"

	"github.com/OSSystems/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/nakomis/bootboots-sub001/bootsel"
	"github.com/nakomis/bootboots-sub001/executor"
	"github.com/nakomis/bootboots-sub001/flash"
	"github.com/nakomis/bootboots-sub001/otarecord"
	"github.com/nakomis/bootboots-sub001/utils"
)

func main() {
	log.SetLevel(logrus.WarnLevel)

	osFs := afero.NewOsFs()

	settings, err := loadSettings(osFs)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	flasher := flash.NewPartitionWriter(settings.TargetDevice)
	flasher.ChunkSize = settings.ChunkSize

	e := executor.NewExecutor(
		osFs,
		settings,
		otarecord.NewDefaultImpl(osFs, settings.RecordDir),
		&bootsel.DefaultImpl{CmdLineExecuter: &utils.CmdLine{}},
		flasher,
		&utils.RebooterImpl{})

	e.Run()
}

func loadSettings(fs afero.Fs) (*executor.Settings, error) {
	file, err := fs.Open(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return executor.DefaultSettings(), nil
		}

		return nil, err
	}
	defer file.Close()

	return executor.LoadSettings(file)
}
