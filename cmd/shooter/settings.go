package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [key value]",
	Short: "Show or change stored settings",
	Long: `Without arguments, print the stored settings. With a key and a
value, change one setting and save it.

Keys: music_volume, sfx_volume, difficulty, fullscreen

Examples:
  shooter settings
  shooter settings difficulty hard
  shooter settings sfx_volume 0.3`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return errors.New("expected no arguments or a key and a value")
		}
		return nil
	},
	RunE: runSettings,
}

func runSettings(_ *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()
	if e.store == nil {
		return errors.New("no database available")
	}

	s := e.settings()
	if len(args) == 2 {
		if err := s.Set(args[0], args[1]); err != nil {
			return err
		}
		blob, err := s.Encode()
		if err != nil {
			return err
		}
		if err := e.store.SaveSettings(blob); err != nil {
			return err
		}
		e.logger.Info("setting saved", "key", args[0], "value", args[1])
	}

	blob, err := s.Encode()
	if err != nil {
		return err
	}
	fmt.Print(string(blob))
	return nil
}
