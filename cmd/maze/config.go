// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMaze/pkg/ux"
	"github.com/AleutianAI/AleutianMaze/services/maze/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the maze configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
)

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	err := config.WriteDefault(path)
	if errors.Is(err, os.ErrExist) {
		ux.Warning("Config already exists at " + path)
		return nil
	}
	if err != nil {
		return &exitError{code: exitFailure, msg: "write config: " + err.Error(), err: err}
	}
	ux.Success("Wrote " + path)
	return nil
}
