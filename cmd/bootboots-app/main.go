/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package main

import (
	"net/http"
	"os"

	"github.com/OSSystems/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/nakomis/bootboots-sub001/bootsel"
	"github.com/nakomis/bootboots-sub001/client"
	"github.com/nakomis/bootboots-sub001/otarecord"
	"github.com/nakomis/bootboots-sub001/server"
	"github.com/nakomis/bootboots-sub001/stager"
	"github.com/nakomis/bootboots-sub001/utils"
)

func main() {
	log.SetLevel(logrus.InfoLevel)

	osFs := afero.NewOsFs()

	settings, err := loadSettings(osFs)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	selector := &bootsel.DefaultImpl{CmdLineExecuter: &utils.CmdLine{}}
	if err = bootsel.EnsureLoaderNext(selector); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	record := otarecord.NewDefaultImpl(osFs, settings.RecordDir)

	s := stager.NewStager(
		osFs,
		settings,
		record,
		client.NewFirmwareClient(),
		&utils.RebooterImpl{},
		stager.NewCmdLineQuiescer(),
		nil)

	backend, err := server.NewAgentBackend(s, firmwareVersion)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	s.Progress = backend

	log.Info("listening on ", settings.ListenAddress)

	router := server.NewBackendRouter(backend)
	if err = http.ListenAndServe(settings.ListenAddress, router.HTTPRouter); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func loadSettings(fs afero.Fs) (*stager.Settings, error) {
	file, err := fs.Open(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("settings file not found, using defaults: ", settingsPath)
			return stager.DefaultSettings(), nil
		}

		return nil, err
	}
	defer file.Close()

	return stager.LoadSettings(file)
}
