package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"beatwave/config"
	"beatwave/core/player"
	"beatwave/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "终端播放器",
	Long:  `在终端中浏览曲库并模拟播放（不解码音频）。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, beats, err := loadBeats(cmd.Context())
		if err != nil {
			return err
		}
		opts := player.Options{
			FrameInterval: time.Duration(cfg.PlayerTickMS) * time.Millisecond,
			DurationRate:  cfg.PlayerRateMode == config.RateModeDuration,
		}
		_, err = tea.NewProgram(tui.New(beats, opts), tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
