package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"beatwave/db"
	"beatwave/repository"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移MySQL曲库表",
	Long:  `创建或更新beats表，可选写入演示数据。之后可用 CATALOG_SOURCE=mysql 启动服务。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.ConnectGormDB(cfg); err != nil {
			return err
		}
		defer db.CloseGormDB()

		if err := db.AutoMigrate(); err != nil {
			return err
		}
		if !migrateSeed {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		beats := repository.FixtureBeats()
		if err := repository.NewGormBeatRepository(db.GormDB).Seed(ctx, beats); err != nil {
			return err
		}
		fmt.Printf("已写入 %d 首演示beat\n", len(beats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "写入演示曲库")
}
