package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"beatwave/core/catalog"
)

var chartsLimit int

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "热门榜单",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, beats, err := loadBeats(cmd.Context())
		if err != nil {
			return err
		}
		limit := chartsLimit
		if limit <= 0 {
			limit = cfg.TopChartsLimit
		}
		fmt.Println(renderBeats(catalog.TopCharts(beats, limit), catalog.ChartScore))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().IntVarP(&chartsLimit, "limit", "n", 0, "条目数，默认取 TOP_CHARTS_LIMIT")
}
