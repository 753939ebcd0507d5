package compose

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/pkg/minio"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ErrAssetNotFound 素材缺失，合成时按跳过处理
var ErrAssetNotFound = errors.New("素材不存在")

// AssetStore 图层与底图素材的读取抽象
type AssetStore interface {
	// OpenLayer 读取某类别下的一张图层
	OpenLayer(ctx context.Context, category, name string) (image.Image, error)
	// OpenBase 按编号读取底图
	OpenBase(ctx context.Context, id int) (image.Image, error)
	// ListLayers 某类别下全部图层文件名
	ListLayers(ctx context.Context, category string) ([]string, error)
}

// DirStore 本地目录素材库
// 目录结构: layerDir/<Category>/<Name>.png, baseDir/milady_<id>.png
type DirStore struct {
	layerDir string
	baseDir  string
}

func NewDirStore(cfg config.ComposeConfig) *DirStore {
	return &DirStore{layerDir: cfg.LayerDir, baseDir: cfg.BaseDir}
}

func (s *DirStore) OpenLayer(_ context.Context, category, name string) (image.Image, error) {
	path := filepath.Join(s.layerDir, category, name)
	img, err := imaging.Open(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, ErrAssetNotFound
		}
		return nil, errors.Wrapf(err, "图层读取失败 %s/%s", category, name)
	}
	return img, nil
}

func (s *DirStore) OpenBase(_ context.Context, id int) (image.Image, error) {
	path := filepath.Join(s.baseDir, fmt.Sprintf("milady_%d.png", id))
	img, err := imaging.Open(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, ErrAssetNotFound
		}
		return nil, errors.Wrapf(err, "底图读取失败 #%d", id)
	}
	return img, nil
}

func (s *DirStore) ListLayers(_ context.Context, category string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.layerDir, category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "图层目录读取失败 %s", category)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ObjectStore MinIO 素材库，对象名与本地目录结构一致
type ObjectStore struct {
	layerPrefix string
	basePrefix  string
}

func NewObjectStore(cfg config.MinIOConfig) *ObjectStore {
	return &ObjectStore{
		layerPrefix: strings.TrimRight(cfg.LayerPrefix, "/"),
		basePrefix:  strings.TrimRight(cfg.LayerPrefix, "/") + "/bases",
	}
}

func (s *ObjectStore) open(ctx context.Context, key string) (image.Image, error) {
	obj, err := minio.GetObject(ctx, key)
	if err != nil {
		return nil, ErrAssetNotFound
	}
	defer obj.Close()

	img, err := imaging.Decode(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "素材解码失败 %s", key)
	}
	return img, nil
}

func (s *ObjectStore) OpenLayer(ctx context.Context, category, name string) (image.Image, error) {
	return s.open(ctx, s.layerPrefix+"/"+category+"/"+name)
}

func (s *ObjectStore) OpenBase(ctx context.Context, id int) (image.Image, error) {
	return s.open(ctx, fmt.Sprintf("%s/milady_%d.png", s.basePrefix, id))
}

func (s *ObjectStore) ListLayers(ctx context.Context, category string) ([]string, error) {
	prefix := s.layerPrefix + "/" + category + "/"
	keys, err := minio.ListObjects(ctx, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "图层列表读取失败 %s", category)
	}

	var names []string
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
