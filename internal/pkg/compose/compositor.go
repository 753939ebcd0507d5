package compose

import (
	"ContentStudio/internal/api/config"
	"context"
	"image"
	"image/color"
	log "log/slog"
	"math/rand"
	"sort"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

const baseCount = 10000

// 合成模式
const (
	ModeOverlay     = "overlay"     // 底图 + 装饰图层直接叠加，保留全部细节
	ModeReconstruct = "reconstruct" // 按属性逐层重建，支持替换结构性图层
	ModeScratch     = "scratch"     // 无底图，从基础图层拼
)

var (
	ErrUnknownCategory = errors.New("未知图层类别")
	ErrBaseNotFound    = errors.New("底图不存在")
)

// 属性名到图层类别的别名表，其余属性同名即类别
var attributeAliases = map[string]string{
	"Race": "UnclothedBase",
}

// Request 一次合成请求
type Request struct {
	// BaseID 底图编号，nil 表示随机挑选
	BaseID *int
	// Attributes 底图的属性元数据，重组模式下用来还原原有图层
	Attributes map[string]string
	// Layers 要替换或叠加的图层，类别 -> 文件名列表
	Layers map[string][]string
	// 输出尺寸，0 表示用画布原始尺寸
	OutputWidth  int
	OutputHeight int
}

// SkippedLayer 因素材缺失被跳过的图层
type SkippedLayer struct {
	Category string `json:"category"`
	File     string `json:"file"`
}

// Result 合成结果
type Result struct {
	Image   *image.NRGBA
	Mode    string
	BaseID  int
	Skipped []SkippedLayer
}

// Composer 图层合成引擎
type Composer struct {
	store        AssetStore
	canvasWidth  int
	canvasHeight int
}

func NewComposer(store AssetStore, cfg config.ComposeConfig) *Composer {
	return &Composer{
		store:        store,
		canvasWidth:  cfg.CanvasWidth,
		canvasHeight: cfg.CanvasHeight,
	}
}

// Compose 执行合成，按请求内容自动选择模式：
// 含结构性图层且有属性元数据时走重组，否则在底图上直接叠加
func (c *Composer) Compose(ctx context.Context, req *Request) (*Result, error) {
	for name := range req.Layers {
		if _, ok := LookupCategory(name); !ok {
			return nil, errors.Wrap(ErrUnknownCategory, name)
		}
	}

	if req.BaseID == nil && len(req.Attributes) == 0 {
		return c.composeScratch(ctx, req)
	}

	if HasStructural(req.Layers) && len(req.Attributes) > 0 {
		return c.composeReconstruct(ctx, req)
	}
	return c.composeOverlay(ctx, req)
}

// composeOverlay 底图打底，装饰图层依次 alpha 叠加
func (c *Composer) composeOverlay(ctx context.Context, req *Request) (*Result, error) {
	baseID := c.pickBaseID(req)
	base, err := c.store.OpenBase(ctx, baseID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return nil, ErrBaseNotFound
		}
		return nil, err
	}

	canvas := imaging.Resize(base, c.canvasWidth, c.canvasHeight, imaging.Lanczos)
	result := &Result{Mode: ModeOverlay, BaseID: baseID}

	for _, cat := range AllCategories() {
		if cat.Structural {
			continue
		}
		for _, file := range req.Layers[cat.Name] {
			layer, err := c.loadLayer(ctx, cat.Name, file, result)
			if err != nil {
				return nil, err
			}
			if layer != nil {
				canvas = imaging.Overlay(canvas, layer, image.Pt(0, 0), 1.0)
			}
		}
	}

	// 请求里带了结构性图层但没有属性可重组，记为跳过
	for name, files := range req.Layers {
		if cat, _ := LookupCategory(name); cat.Structural {
			log.WarnContext(ctx, "structural layer ignored in overlay mode", "category", name)
			for _, f := range files {
				result.Skipped = append(result.Skipped, SkippedLayer{Category: name, File: f})
			}
		}
	}

	result.Image = c.finish(canvas, req)
	return result, nil
}

// composeReconstruct 按属性元数据逐层重建，替换表优先于原属性
func (c *Composer) composeReconstruct(ctx context.Context, req *Request) (*Result, error) {
	type entry struct {
		z        int
		order    int
		category string
		file     string
	}
	var entries []entry
	n := 0
	add := func(category, file string) {
		cat, ok := LookupCategory(category)
		if !ok {
			return
		}
		entries = append(entries, entry{z: cat.ZIndex, order: n, category: category, file: file})
		n++
	}

	// 原有属性，替换表命中的类别换成新图层
	seen := make(map[string]bool)
	for attr, value := range req.Attributes {
		category := attr
		if alias, ok := attributeAliases[attr]; ok {
			category = alias
		}
		if _, ok := LookupCategory(category); !ok {
			continue
		}
		seen[category] = true
		if files, ok := req.Layers[category]; ok {
			for _, f := range files {
				add(category, f)
			}
			continue
		}
		add(category, attributeFile(value))
	}

	// 必备类别缺省补默认图层
	for _, cat := range AllCategories() {
		if !cat.Required || seen[cat.Name] {
			continue
		}
		seen[cat.Name] = true
		if files, ok := req.Layers[cat.Name]; ok {
			for _, f := range files {
				add(cat.Name, f)
			}
			continue
		}
		add(cat.Name, cat.DefaultFile)
	}

	// 属性之外的纯叠加类别
	for name, files := range req.Layers {
		if seen[name] {
			continue
		}
		for _, f := range files {
			add(name, f)
		}
	}

	// z 相同保持加入顺序
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].z != entries[j].z {
			return entries[i].z < entries[j].z
		}
		return entries[i].order < entries[j].order
	})

	result := &Result{Mode: ModeReconstruct, BaseID: c.pickBaseID(req)}
	var canvas *image.NRGBA
	for _, e := range entries {
		layer, err := c.loadLayer(ctx, e.category, e.file, result)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		if canvas == nil {
			canvas = layer
		} else {
			canvas = imaging.Overlay(canvas, layer, image.Pt(0, 0), 1.0)
		}
	}

	if canvas == nil {
		canvas = imaging.New(c.canvasWidth, c.canvasHeight, color.NRGBA{200, 200, 200, 255})
	}
	result.Image = c.finish(canvas, req)
	return result, nil
}

// composeScratch 无底图模式，全部图层按 z 序直接拼
func (c *Composer) composeScratch(ctx context.Context, req *Request) (*Result, error) {
	canvas := imaging.New(c.canvasWidth, c.canvasHeight, color.NRGBA{200, 200, 200, 255})
	result := &Result{Mode: ModeScratch}

	for _, cat := range AllCategories() {
		for _, file := range req.Layers[cat.Name] {
			layer, err := c.loadLayer(ctx, cat.Name, file, result)
			if err != nil {
				return nil, err
			}
			if layer != nil {
				canvas = imaging.Overlay(canvas, layer, image.Pt(0, 0), 1.0)
			}
		}
	}

	result.Image = c.finish(canvas, req)
	return result, nil
}

// loadLayer 读取并缩放图层，素材缺失只记录不报错
func (c *Composer) loadLayer(ctx context.Context, category, file string, result *Result) (*image.NRGBA, error) {
	img, err := c.store.OpenLayer(ctx, category, file)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			log.WarnContext(ctx, "layer missing, skipped", "category", category, "file", file)
			result.Skipped = append(result.Skipped, SkippedLayer{Category: category, File: file})
			return nil, nil
		}
		return nil, err
	}
	return imaging.Resize(img, c.canvasWidth, c.canvasHeight, imaging.Lanczos), nil
}

func (c *Composer) finish(canvas *image.NRGBA, req *Request) *image.NRGBA {
	w, h := req.OutputWidth, req.OutputHeight
	if w <= 0 || h <= 0 || (w == c.canvasWidth && h == c.canvasHeight) {
		return canvas
	}
	return imaging.Resize(canvas, w, h, imaging.Lanczos)
}

func (c *Composer) pickBaseID(req *Request) int {
	if req.BaseID != nil {
		return *req.BaseID
	}
	return rand.Intn(baseCount)
}

// ListLayers 某类别的全部可用图层
func (c *Composer) ListLayers(ctx context.Context, category string) ([]string, error) {
	return c.store.ListLayers(ctx, category)
}

// RandomLayers 从装饰类别里随机挑 n 个类别各取一张图层
func (c *Composer) RandomLayers(ctx context.Context, n int) (map[string][]string, error) {
	names := DecorativeCategories()
	rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	layers := make(map[string][]string)
	for _, name := range names {
		if len(layers) >= n {
			break
		}
		files, err := c.store.ListLayers(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		layers[name] = []string{files[rand.Intn(len(files))]}
	}
	return layers, nil
}

// attributeFile 把属性值转成图层文件名，逐词首字母大写
func attributeFile(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ") + ".png"
}
