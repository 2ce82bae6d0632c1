/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bootboots-ctl",
	Short: "BootBoots Control Utility",
}

func main() {
	var serverAddress string
	var firmwareURL string
	var firmwareVersion string
	var manifestPath string

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Stage a firmware update on the appliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent := NewClient(serverAddress)

			if manifestPath != "" {
				return execUpdateFromManifestCmd(agent, manifestPath)
			}

			if firmwareURL == "" {
				return fmt.Errorf("either --url or --manifest is required")
			}

			return execUpdateCmd(agent, firmwareURL, firmwareVersion)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the last reported update status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execStatusCmd(NewClient(serverAddress))
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print general information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execInfoCmd(NewClient(serverAddress))
		},
	}

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Print agent log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLogsCmd(NewClient(serverAddress))
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the in-flight firmware transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCancelCmd(NewClient(serverAddress))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverAddress, "server-address", "s", "localhost:8080", "Address of the appliance trigger API")

	updateCmd.Flags().StringVarP(&firmwareURL, "url", "u", "", "URL of the firmware image to stage")
	updateCmd.Flags().StringVarP(&firmwareVersion, "version", "v", "", "Version label of the firmware image")
	updateCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Stage the newest version listed in this manifest file")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(cancelCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
