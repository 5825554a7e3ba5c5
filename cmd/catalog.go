package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"beatwave/core/catalog"
	"beatwave/model"
	"beatwave/repository"
)

var (
	catalogGenre string
	catalogKey   string
	catalogBPM   int
	catalogSort  string
)

// loadBeats opens the configured catalog source and lists its beats.
func loadBeats(ctx context.Context) (repository.CatalogRepository, []model.Beat, error) {
	repo, err := repository.OpenCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	beats, err := repo.ListBeats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return repo, beats, nil
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "浏览曲库",
	Long:  `按风格、调式、BPM筛选曲库并排序，输出表格。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, beats, err := loadBeats(cmd.Context())
		if err != nil {
			return err
		}
		v := url.Values{}
		v.Set("genre", catalogGenre)
		v.Set("key", catalogKey)
		v.Set("sort", catalogSort)
		if catalogBPM > 0 {
			v.Set("bpm", strconv.Itoa(catalogBPM))
		}
		q := catalog.ParseQuery(v)
		result := catalog.Apply(beats, q)

		fmt.Printf("来源: %s  查询: %s\n", cfg.CatalogSource, q)
		fmt.Println(renderBeats(result, nil))
		fmt.Printf("%d / %d beats\n", len(result), len(beats))
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "导出当前曲库为TOML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, beats, err := loadBeats(ctx)
		if err != nil {
			return err
		}
		c := repository.Catalog{Beats: beats}
		if c.Playlists, err = repo.ListPlaylists(ctx); err != nil {
			return err
		}
		if c.Kits, err = repo.ListKits(ctx); err != nil {
			return err
		}
		if c.Services, err = repo.ListServices(ctx); err != nil {
			return err
		}
		data, err := repository.MarshalCatalog(c)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return err
		}
		fmt.Printf("已导出 %d 首beat到 %s\n", len(beats), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	catalogCmd.Flags().StringVarP(&catalogGenre, "genre", "g", "", "按风格筛选 (Trap, Drill, Lo-Fi ...)")
	catalogCmd.Flags().StringVarP(&catalogKey, "key", "k", "", "按调式筛选 (C Min, F# Maj ...)")
	catalogCmd.Flags().IntVarP(&catalogBPM, "bpm", "b", 0, "目标BPM，匹配±10范围")
	catalogCmd.Flags().StringVarP(&catalogSort, "sort", "s", "", "排序: price_asc | price_desc | best")

	catalogCmd.Example = `  # 列出全部
  beatwave catalog

  # 140 BPM 左右的 Trap，价格从高到低
  beatwave catalog -g Trap -b 140 -s price_desc

  # 导出为 TOML，配合 CATALOG_SOURCE=file 使用
  beatwave catalog export catalog.toml`
}
