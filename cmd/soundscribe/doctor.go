package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"soundscribe/internal"
)

type checkResult struct {
	name   string
	ok     bool
	detail string
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment: ffmpeg, recordings directory, bot token, download port",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.Load()
			if err != nil {
				return err
			}

			results := []checkResult{
				checkFFmpeg(cfg.FFmpegPath),
				checkRecordingsDir(cfg.RecordingsDir),
				checkBotToken(cfg.BotToken),
				checkDownloadPort(cfg.DownloadHost, cfg.DownloadPort),
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Check", "Status", "Detail"})
			failures := 0
			for _, r := range results {
				status := color.Green.Sprint("OK")
				if !r.ok {
					status = color.Red.Sprint("FAIL")
					failures++
				}
				table.Append([]string{r.name, status, r.detail})
			}
			table.Render()

			if failures > 0 {
				color.Red.Printf("%d check(s) failed\n", failures)
				os.Exit(exitRuntime)
			}
			color.Green.Println("All checks passed")
			return nil
		},
	}
}

func checkFFmpeg(binPath string) checkResult {
	out, err := exec.Command(binPath, "-version").Output()
	if err != nil {
		return checkResult{"ffmpeg", false, fmt.Sprintf("not runnable at %q: %v", binPath, err)}
	}
	firstLine, _, _ := strings.Cut(string(out), "\n")
	return checkResult{"ffmpeg", true, firstLine}
}

func checkRecordingsDir(dir string) checkResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return checkResult{"recordings dir", false, err.Error()}
	}
	probe := filepath.Join(dir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return checkResult{"recordings dir", false, fmt.Sprintf("not writable: %v", err)}
	}
	_ = os.Remove(probe)
	return checkResult{"recordings dir", true, dir}
}

func checkBotToken(token string) checkResult {
	if token == "" {
		return checkResult{"bot token", false, "DISCORD_BOT_TOKEN is not set"}
	}
	return checkResult{"bot token", true, "present"}
}

func checkDownloadPort(host string, port int) checkResult {
	addr := fmt.Sprintf("%s:%d", host, port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return checkResult{"download port", false, fmt.Sprintf("cannot bind %s: %v", addr, err)}
	}
	_ = listener.Close()
	return checkResult{"download port", true, addr}
}
