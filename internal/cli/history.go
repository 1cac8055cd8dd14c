package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simon-code-git/circuitcube/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show journaled sessions and commands",
	Long: `List recorded sessions from the command journal, or show the commands
and battery readings of one session.

Journaling is off by default; enable it with --journal or journal_path in
the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum sessions to list")
	rootCmd.AddCommand(historyCmd)
}

func journalPath() (string, error) {
	cfg, err := loadSettings()
	if err != nil {
		return "", err
	}
	if cfg.JournalPath != "" {
		return cfg.JournalPath, nil
	}
	return journal.DefaultPath()
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := journalPath()
	if err != nil {
		return err
	}

	j, err := journal.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if len(args) == 1 {
		return showSession(j, args[0])
	}

	sessions, err := j.ListSessions(historyLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No recorded sessions")
		return nil
	}

	for _, s := range sessions {
		end := "active"
		if s.EndedAt != nil {
			end = s.EndedAt.Local().Format(time.Kitchen)
		}
		fmt.Printf("%s  %s  %s (%s)  %s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.DeviceName, s.DeviceAddress, end)
	}
	return nil
}

func showSession(j *journal.Journal, sessionID string) error {
	commands, err := j.ListCommands(sessionID)
	if err != nil {
		return err
	}
	readings, err := j.ListBatteryReadings(sessionID)
	if err != nil {
		return err
	}

	if len(commands) == 0 && len(readings) == 0 {
		fmt.Println("No records for session", sessionID)
		return nil
	}

	for _, c := range commands {
		fmt.Printf("%s  motor %s  velocity %4d  %s\n",
			c.SentAt.Local().Format("15:04:05.000"), c.Motor, c.Velocity, c.Payload)
	}
	for _, r := range readings {
		fmt.Printf("%s  battery %.3f V\n",
			r.ReadAt.Local().Format("15:04:05.000"), r.Voltage)
	}
	return nil
}
