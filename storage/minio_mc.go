package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"beatwave/logger"
)

// BucketStats 存储桶统计信息
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	LastModified time.Time
	// ByType counts objects per media kind (audio, image, ...).
	ByType map[string]int64
}

// List 列出前缀下的对象，按 key 排序
func (m *MinioClient) List(ctx context.Context, prefix string, recursive bool) ([]ObjectInfo, BucketStats, error) {
	stats := BucketStats{ByType: make(map[string]int64)}
	var objects []ObjectInfo

	objectCh := m.client.ListObjects(ctx, m.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: recursive,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, stats, fmt.Errorf("列出对象时出错: %w", object.Err)
		}
		info := ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ContentType:  object.ContentType,
			ETag:         object.ETag,
		}
		objects = append(objects, info)
		stats.add(info)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, stats, nil
}

func (s *BucketStats) add(o ObjectInfo) {
	s.TotalObjects++
	s.TotalSize += o.Size
	if o.LastModified.After(s.LastModified) {
		s.LastModified = o.LastModified
	}
	if strings.HasSuffix(o.Key, "/") {
		return
	}
	if s.ByType == nil {
		s.ByType = make(map[string]int64)
	}
	s.ByType[MediaKind(o.Key)]++
}

// Summarize 汇总对象统计
func Summarize(objects []ObjectInfo) BucketStats {
	stats := BucketStats{ByType: make(map[string]int64)}
	for _, o := range objects {
		stats.add(o)
	}
	return stats
}

// DeletePrefix 递归删除前缀下的全部对象，返回删除数量
func (m *MinioClient) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, fmt.Errorf("删除操作需要指定目录前缀")
	}
	objects, _, err := m.List(ctx, prefix, true)
	if err != nil {
		return 0, err
	}
	if len(objects) == 0 {
		return 0, fmt.Errorf("目录 %s 为空或不存在", prefix)
	}

	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		objectsCh <- minio.ObjectInfo{Key: obj.Key}
	}
	close(objectsCh)

	for rerr := range m.client.RemoveObjects(ctx, m.bucketName, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			return 0, fmt.Errorf("删除对象 %s 失败: %w", rerr.ObjectName, rerr.Err)
		}
	}
	logger.Info("删除目录完成", logger.String("prefix", prefix), logger.Int("count", len(objects)))
	return len(objects), nil
}

// FormatSize 格式化文件大小
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// MediaKind 从文件名推断媒体类型
func MediaKind(key string) string {
	ext := ""
	if i := strings.LastIndex(key, "."); i >= 0 && !strings.Contains(key[i:], "/") {
		ext = strings.ToLower(key[i:])
	}
	switch ext {
	case ".mp3", ".wav", ".flac", ".m4a":
		return "audio"
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	case ".zip", ".rar":
		return "kit"
	case ".toml", ".json":
		return "catalog"
	default:
		return "other"
	}
}

// ContentTypeFor guesses a Content-Type for uploads.
func ContentTypeFor(key string) string {
	ext := strings.ToLower(key[strings.LastIndex(key, ".")+1:])
	switch ext {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
