package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes to provide meaningful status to the operating system or a
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	root := &cobra.Command{
		Use:           "soundscribe",
		Short:         "Discord voice-channel recorder with token-gated downloads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newDoctorCmd(), newInviteCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "soundscribe: %v\n", err)
		os.Exit(exitRuntime)
	}
}
