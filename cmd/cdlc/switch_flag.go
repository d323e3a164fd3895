package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// switchMode is the value of the auto|on|off flags (--color, --ui).
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

func (m switchMode) String() string {
	switch m {
	case switchOn:
		return "on"
	case switchOff:
		return "off"
	}
	return "auto"
}

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves auto against the terminal behind f.
func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}

// readSwitch looks the flag up on cmd first, then among the root's persistent flags.
func readSwitch(cmd *cobra.Command, name string) (switchMode, error) {
	fl := cmd.Flags().Lookup(name)
	if fl == nil {
		fl = cmd.Root().PersistentFlags().Lookup(name)
	}
	if fl == nil {
		return switchAuto, fmt.Errorf("failed to get %s flag: not defined", name)
	}
	return parseSwitch(name, fl.Value.String())
}
