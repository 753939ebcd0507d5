package minio

import (
	"ContentStudio/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Upload 上传对象，返回对象名
func Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	cfg := config.Cfg.MinIO
	_, err := Client.PutObject(ctx, cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// GetObject 获取对象内容
func GetObject(ctx context.Context, objectName string) (io.ReadCloser, error) {
	cfg := config.Cfg.MinIO
	obj, err := Client.GetObject(ctx, cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject 是懒加载的，Stat 一次确认对象存在
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// ListObjects 列出指定前缀下的对象名
func ListObjects(ctx context.Context, prefix string) ([]string, error) {
	cfg := config.Cfg.MinIO
	var names []string
	for obj := range Client.ListObjects(ctx, cfg.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// PublicURL 拼出对象的外部访问地址
func PublicURL(objectName string) string {
	cfg := config.Cfg.MinIO
	endpoint := cfg.PublicEndpoint
	if endpoint == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		endpoint = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), cfg.Bucket, objectName)
}
