package service

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/pkg/compose"
	"ContentStudio/internal/pkg/consts"
	"ContentStudio/internal/pkg/minio"
	"ContentStudio/internal/pkg/redis"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	log "log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// memeTemplates 预设的上下字幕模板
var memeTemplates = map[string][][2]string{
	"gm": {
		{"GM BUILDERS", "LFG"},
		{"GM FRENS", "WAGMI"},
		{"GOOD MORNING", "TIME TO BUILD"},
		{"GM", "LETS FUCKING GO"},
		{"RISE AND GRIND", "GM"},
	},
	"crypto": {
		{"WEN MOON", "SOON™"},
		{"DIAMOND HANDS", "NEVER SELLING"},
		{"NGMI", "HFSP"},
		{"BULLISH AF", "TO THE MOON"},
		{"DYOR", "NFA"},
		{"WAGMI", "FRENS"},
	},
	"milady": {
		{"MILADY SZNN", "ALWAYS"},
		{"NOBODY TAKES MEMES", "AS SERIOUSLY AS US"},
		{"NETWORK SPIRITUALITY", "DIGITAL FOLKLORE"},
		{"REMILIA COLLECTIVE", "CULT OF BEAUTY"},
	},
	"motivational": {
		{"KEEP BUILDING", "NGMI OTHERWISE"},
		{"STAY FOCUSED", "IGNORE FUD"},
		{"ONE MORE REP", "THEN WE MOON"},
		{"BE UNGOVERNABLE", "STAY BASED"},
	},
}

type MemeService interface {
	// Generate 合成一张梗图并返回访问地址
	Generate(ctx context.Context, req *dto.MemeReq) (*dto.MemeDTO, error)
	// Layers 各装饰类别的可用图层
	Layers(ctx context.Context) (*dto.LayersDTO, error)
	// Templates 预设文字模板
	Templates(ctx context.Context) (*dto.TemplatesDTO, error)
}

type memeServiceImpl struct {
	composer  *compose.Composer
	captioner *compose.Captioner
	compose   config.ComposeConfig
	minio     config.MinIOConfig
}

func NewMemeService(composer *compose.Composer, captioner *compose.Captioner) MemeService {
	return &memeServiceImpl{
		composer:  composer,
		captioner: captioner,
		compose:   config.Cfg.Compose,
		minio:     config.Cfg.MinIO,
	}
}

func (s *memeServiceImpl) Generate(ctx context.Context, req *dto.MemeReq) (*dto.MemeDTO, error) {
	topText, bottomText := req.TopText, req.BottomText
	if req.Template != "" {
		pairs, ok := memeTemplates[req.Template]
		if !ok {
			return nil, ErrTemplateNotFound
		}
		pair := pairs[rand.Intn(len(pairs))]
		topText, bottomText = pair[0], pair[1]
	}

	layers := req.Layers
	if len(layers) == 0 && req.RandomLayers > 0 {
		var err error
		layers, err = s.composer.RandomLayers(ctx, req.RandomLayers)
		if err != nil {
			return nil, err
		}
	}

	// 完全确定性的请求可以走缓存
	deterministic := req.BaseID != nil && req.Template == "" && req.RandomLayers == 0
	var cacheKey string
	if deterministic && redis.Rdb != nil {
		cacheKey = consts.MemeCacheKey + fingerprint(req)
		if url, err := redis.GetValue(ctx, cacheKey); err == nil && url != "" {
			return &dto.MemeDTO{URL: url, Mode: "", BaseID: *req.BaseID, Cached: true}, nil
		}
	}

	result, err := s.composer.Compose(ctx, &compose.Request{
		BaseID:       req.BaseID,
		Attributes:   req.Attributes,
		Layers:       layers,
		OutputWidth:  req.Width,
		OutputHeight: req.Height,
	})
	if err != nil {
		switch errors.Cause(err) {
		case compose.ErrUnknownCategory:
			return nil, ErrCategoryUnknown
		case compose.ErrBaseNotFound:
			return nil, ErrBaseNotFound
		}
		return nil, err
	}

	img := result.Image
	if topText != "" || bottomText != "" {
		if s.captioner == nil {
			return nil, ErrCaptionFontMissing
		}
		opts := compose.DefaultCaptionOptions()
		if req.FontStyle != "" {
			opts.Style = req.FontStyle
		}
		if req.AllCaps != nil {
			opts.AllCaps = *req.AllCaps
		}
		captioned, err := s.captioner.AddCaption(img, topText, bottomText, opts)
		if err != nil {
			if errors.Is(err, compose.ErrFontNotFound) {
				return nil, ErrCaptionFontMissing
			}
			return nil, err
		}
		img = imaging.Clone(captioned)
	}

	url, err := s.save(ctx, img)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := redis.SetWithExpiration(ctx, cacheKey, url, 24*time.Hour); err != nil {
			log.WarnContext(ctx, "梗图缓存写入失败", "err", err)
		}
	}

	res := &dto.MemeDTO{URL: url, Mode: result.Mode, BaseID: result.BaseID}
	_ = copier.Copy(&res.Skipped, result.Skipped)
	return res, nil
}

// save PNG 编码后写对象存储或本地目录
func (s *memeServiceImpl) save(ctx context.Context, img *image.NRGBA) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", errors.Wrap(err, "PNG 编码失败")
	}

	name := fmt.Sprintf("milady_meme_%d_%s.png", time.Now().Unix(), uuid.NewString()[:8])

	if s.minio.Enabled {
		object := s.minio.OutputPrefix + "/" + name
		if _, err := minio.Upload(ctx, object, &buf, int64(buf.Len()), "image/png"); err != nil {
			return "", errors.Wrap(err, "梗图上传失败")
		}
		return minio.PublicURL(object), nil
	}

	if err := os.MkdirAll(s.compose.OutputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "输出目录创建失败")
	}
	path := filepath.Join(s.compose.OutputDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "梗图保存失败")
	}
	return path, nil
}

func (s *memeServiceImpl) Layers(ctx context.Context) (*dto.LayersDTO, error) {
	out := &dto.LayersDTO{Categories: make(map[string][]string)}
	for _, name := range compose.DecorativeCategories() {
		files, err := s.composer.ListLayers(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			out.Categories[name] = files
		}
	}
	return out, nil
}

func (s *memeServiceImpl) Templates(_ context.Context) (*dto.TemplatesDTO, error) {
	return &dto.TemplatesDTO{Templates: memeTemplates}, nil
}

// fingerprint 请求指纹，作缓存键
func fingerprint(req *dto.MemeReq) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
