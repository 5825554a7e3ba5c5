package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"beatwave/storage"
)

var (
	minioPrefix    string
	minioStats     bool
	minioRecursive bool
	minioDelete    bool
	minioUploadKey string
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO存储桶管理",
	Long:  `查看和管理MinIO存储桶中的封面与试听文件，支持列出文件、查看统计信息、删除目录等功能。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		client, err := storage.NewMinioClient(cfg)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if minioDelete {
			if minioPrefix == "" {
				return fmt.Errorf("删除操作需要指定目录前缀")
			}
			n, err := client.DeletePrefix(ctx, minioPrefix)
			if err != nil {
				return err
			}
			fmt.Printf("已删除 %d 个对象 (前缀: %s)\n", n, minioPrefix)
			return nil
		}

		objects, stats, err := client.List(ctx, minioPrefix, minioRecursive || minioStats)
		if err != nil {
			return err
		}
		if minioStats {
			printBucketStats(client.Bucket(), stats)
			return nil
		}
		rows := make([][]string, len(objects))
		for i, o := range objects {
			rows[i] = []string{o.Key, storage.MediaKind(o.Key), storage.FormatSize(o.Size), o.LastModified.Format("2006-01-02 15:04:05")}
		}
		fmt.Println(renderTable([]string{"Key", "Kind", "Size", "Modified"}, rows, 3))
		return nil
	},
}

func printBucketStats(bucket string, stats storage.BucketStats) {
	kinds := make([]string, 0, len(stats.ByType))
	for k := range stats.ByType {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	rows := [][]string{
		{"bucket", bucket},
		{"objects", fmt.Sprint(stats.TotalObjects)},
		{"size", storage.FormatSize(stats.TotalSize)},
	}
	if !stats.LastModified.IsZero() {
		rows = append(rows, []string{"last modified", stats.LastModified.Format("2006-01-02 15:04:05")})
	}
	for _, k := range kinds {
		rows = append(rows, []string{k, fmt.Sprint(stats.ByType[k])})
	}
	fmt.Println(renderTable([]string{"Stat", "Value"}, rows))
}

var minioUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "上传封面或试听文件",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := storage.NewMinioClient(cfg)
		if err != nil {
			return err
		}
		key := minioUploadKey
		if key == "" {
			key = filepath.Base(args[0])
		}
		key, ok := storage.CleanKey(key)
		if !ok {
			return fmt.Errorf("非法的对象路径: %s", minioUploadKey)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := client.EnsureBucket(ctx); err != nil {
			return err
		}
		info, err := client.Upload(ctx, key, args[0], storage.ContentTypeFor(key))
		if err != nil {
			return err
		}
		fmt.Printf("已上传 %s (%s, %s)\n", info.Key, storage.FormatSize(info.Size), info.ContentType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
	minioCmd.AddCommand(minioUploadCmd)

	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "按前缀过滤文件或指定要操作的目录")
	minioCmd.Flags().BoolVarP(&minioStats, "stats", "s", false, "显示存储桶统计信息")
	minioCmd.Flags().BoolVarP(&minioRecursive, "recursive", "r", false, "递归列出子目录")
	minioCmd.Flags().BoolVarP(&minioDelete, "delete", "d", false, "删除指定目录及其下的所有文件")
	minioUploadCmd.Flags().StringVarP(&minioUploadKey, "key", "k", "", "对象路径，例如 previews/1.mp3")

	minioCmd.Example = `  # 列出所有文件
  beatwave minio -r

  # 只看试听片段
  beatwave minio -p previews/

  # 显示存储桶统计信息
  beatwave minio -s

  # 上传试听文件
  beatwave minio upload ./neon.mp3 -k previews/1.mp3

  # 删除目录及其下的所有文件
  beatwave minio -d -p covers/`
}
