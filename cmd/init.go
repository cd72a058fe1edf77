package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/keisetsu/wed/internal/config"
	"github.com/keisetsu/wed/internal/db"
	"github.com/spf13/cobra"
)

const wedDir = ".wed"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize wed in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout(), configFlag)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, configPath string) error {
	// .wed/ directory
	_, err := os.Stat(wedDir)
	dirExists := err == nil
	if err := os.MkdirAll(wedDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", wedDir, err)
	}
	if dirExists {
		fmt.Fprintln(w, ".wed/ already exists")
	} else {
		fmt.Fprintln(w, ".wed/ created")
	}

	// config file
	if _, err := os.Stat(config.FileName); err == nil {
		fmt.Fprintln(w, config.FileName+" already exists")
	} else {
		if err := os.WriteFile(config.FileName, []byte(config.Default), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", config.FileName, err)
		}
		fmt.Fprintln(w, config.FileName+" created")
	}

	// database, at the path the config names
	cfg, err := loadConfig(configPath, nil)
	if err != nil {
		return err
	}
	_, err = os.Stat(cfg.HistoryDB)
	dbExists := err == nil
	sqlDB, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintln(w, cfg.HistoryDB+" already exists")
	} else {
		fmt.Fprintln(w, cfg.HistoryDB+" created")
	}

	// gitignore
	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore() ([]string, error) {
	const entry = wedDir + "/"

	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if t := strings.TrimSpace(line); t == entry || t == wedDir {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
