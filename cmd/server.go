package cmd

import (
	"github.com/spf13/cobra"

	"beatwave/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动Beatwave服务器",
	Long:  `启动Beatwave的HTTP服务器，提供曲库、购物车、管理后台API以及播放器WebSocket`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
