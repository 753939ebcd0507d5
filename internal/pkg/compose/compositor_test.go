package compose

import (
	"ContentStudio/internal/api/config"
	"context"
	"image"
	"image/color"
	"sort"
	"testing"

	"github.com/disintegration/imaging"
)

// memStore 内存素材库，每个图层一张纯色图
type memStore struct {
	layers map[string]map[string]color.NRGBA
	bases  map[int]color.NRGBA
	opened []string
}

func newMemStore() *memStore {
	return &memStore{
		layers: make(map[string]map[string]color.NRGBA),
		bases:  make(map[int]color.NRGBA),
	}
}

func (m *memStore) addLayer(category, name string, c color.NRGBA) {
	if m.layers[category] == nil {
		m.layers[category] = make(map[string]color.NRGBA)
	}
	m.layers[category][name] = c
}

func (m *memStore) OpenLayer(_ context.Context, category, name string) (image.Image, error) {
	c, ok := m.layers[category][name]
	if !ok {
		return nil, ErrAssetNotFound
	}
	m.opened = append(m.opened, category+"/"+name)
	return imaging.New(10, 12, c), nil
}

func (m *memStore) OpenBase(_ context.Context, id int) (image.Image, error) {
	c, ok := m.bases[id]
	if !ok {
		return nil, ErrAssetNotFound
	}
	return imaging.New(10, 12, c), nil
}

func (m *memStore) ListLayers(_ context.Context, category string) ([]string, error) {
	var names []string
	for n := range m.layers[category] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func testComposeConfig() config.ComposeConfig {
	return config.ComposeConfig{CanvasWidth: 100, CanvasHeight: 125}
}

func intPtr(v int) *int { return &v }

func TestCategoryTable(t *testing.T) {
	bg, ok := LookupCategory("Background")
	if !ok || bg.ZIndex != 0 || !bg.Structural {
		t.Fatalf("Background 描述错误: %+v", bg)
	}
	overlay, ok := LookupCategory("Overlay")
	if !ok || overlay.Structural {
		t.Fatalf("Overlay 描述错误: %+v", overlay)
	}
	if _, ok := LookupCategory("Nonsense"); ok {
		t.Fatal("未知类别不应命中")
	}

	// 类别表按 z 升序
	cats := AllCategories()
	for i := 1; i < len(cats); i++ {
		if cats[i].ZIndex < cats[i-1].ZIndex {
			t.Fatalf("z 序错乱: %s 在 %s 之后", cats[i].Name, cats[i-1].Name)
		}
	}

	if !HasStructural(map[string][]string{"Hat": {"Beret.png"}}) {
		t.Fatal("Hat 应为结构性图层")
	}
	if HasStructural(map[string][]string{"Glasses": {"Sunglasses.png"}}) {
		t.Fatal("Glasses 不是结构性图层")
	}
}

func TestComposeOverlayMode(t *testing.T) {
	store := newMemStore()
	store.bases[7] = color.NRGBA{10, 10, 10, 255}
	store.addLayer("Glasses", "Sunglasses.png", color.NRGBA{250, 0, 0, 255})

	c := NewComposer(store, testComposeConfig())
	res, err := c.Compose(context.Background(), &Request{
		BaseID: intPtr(7),
		Layers: map[string][]string{"Glasses": {"Sunglasses.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != ModeOverlay {
		t.Fatalf("模式 = %s", res.Mode)
	}
	if res.BaseID != 7 {
		t.Fatalf("BaseID = %d", res.BaseID)
	}
	b := res.Image.Bounds()
	if b.Dx() != 100 || b.Dy() != 125 {
		t.Fatalf("画布尺寸 = %dx%d", b.Dx(), b.Dy())
	}
	// 不透明图层盖满画布后应呈现图层颜色
	if r, _, _, _ := res.Image.At(50, 60).RGBA(); r>>8 < 200 {
		t.Fatal("图层未叠加到画布")
	}
}

func TestComposeOverlayMissingBase(t *testing.T) {
	c := NewComposer(newMemStore(), testComposeConfig())
	_, err := c.Compose(context.Background(), &Request{BaseID: intPtr(3)})
	if err != ErrBaseNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestComposeUnknownCategory(t *testing.T) {
	c := NewComposer(newMemStore(), testComposeConfig())
	_, err := c.Compose(context.Background(), &Request{
		BaseID: intPtr(1),
		Layers: map[string][]string{"Wings": {"Angel.png"}},
	})
	if err == nil {
		t.Fatal("未知类别应报错")
	}
}

func TestComposeMissingLayerSkipped(t *testing.T) {
	store := newMemStore()
	store.bases[1] = color.NRGBA{10, 10, 10, 255}

	c := NewComposer(store, testComposeConfig())
	res, err := c.Compose(context.Background(), &Request{
		BaseID: intPtr(1),
		Layers: map[string][]string{"Glasses": {"Missing.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Category != "Glasses" {
		t.Fatalf("缺失图层未记录: %+v", res.Skipped)
	}
}

func TestComposeReconstructZOrder(t *testing.T) {
	store := newMemStore()
	store.addLayer("Background", "Xp.png", color.NRGBA{0, 0, 250, 255})
	store.addLayer("UnclothedBase", "Pale.png", color.NRGBA{250, 220, 200, 255})
	store.addLayer("Hair", "Og Orange.png", color.NRGBA{250, 120, 0, 255})
	store.addLayer("Hat", "Beret.png", color.NRGBA{120, 0, 0, 255})
	store.addLayer("Brows", "Flat.png", color.NRGBA{50, 40, 30, 255})
	store.addLayer("Mouth", "Flat.png", color.NRGBA{200, 80, 80, 255})
	store.addLayer("Face", "Blush.png", color.NRGBA{250, 200, 200, 255})

	c := NewComposer(store, testComposeConfig())
	res, err := c.Compose(context.Background(), &Request{
		BaseID: intPtr(42),
		Attributes: map[string]string{
			"Background": "xp",
			"Race":       "pale",
			"Hair":       "og orange",
		},
		Layers: map[string][]string{"Hat": {"Beret.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != ModeReconstruct {
		t.Fatalf("模式 = %s", res.Mode)
	}

	// 叠加顺序必须严格按 z 升序：背景最先，帽子最后
	want := []string{
		"Background/Xp.png",
		"UnclothedBase/Pale.png",
		"Face/Blush.png",
		"Mouth/Flat.png",
		"Hair/Og Orange.png",
		"Brows/Flat.png",
		"Hat/Beret.png",
	}
	if len(store.opened) != len(want) {
		t.Fatalf("叠加数量 = %d, 期望 %d: %v", len(store.opened), len(want), store.opened)
	}
	for i, w := range want {
		if store.opened[i] != w {
			t.Fatalf("第 %d 层 = %s, 期望 %s (全部: %v)", i, store.opened[i], w, store.opened)
		}
	}
}

func TestComposeDecorativeDoesNotReconstruct(t *testing.T) {
	store := newMemStore()
	store.bases[5] = color.NRGBA{10, 10, 10, 255}
	store.addLayer("Glasses", "Heart Glasses.png", color.NRGBA{250, 0, 250, 255})

	c := NewComposer(store, testComposeConfig())
	res, err := c.Compose(context.Background(), &Request{
		BaseID:     intPtr(5),
		Attributes: map[string]string{"Background": "xp"},
		Layers:     map[string][]string{"Glasses": {"Heart Glasses.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	// 纯装饰图层即使带属性也应走叠加模式，保留底图细节
	if res.Mode != ModeOverlay {
		t.Fatalf("模式 = %s, 期望 overlay", res.Mode)
	}
}

func TestComposeOutputResize(t *testing.T) {
	store := newMemStore()
	store.bases[1] = color.NRGBA{10, 10, 10, 255}

	c := NewComposer(store, testComposeConfig())
	res, err := c.Compose(context.Background(), &Request{
		BaseID:       intPtr(1),
		OutputWidth:  40,
		OutputHeight: 50,
	})
	if err != nil {
		t.Fatal(err)
	}
	b := res.Image.Bounds()
	if b.Dx() != 40 || b.Dy() != 50 {
		t.Fatalf("输出尺寸 = %dx%d", b.Dx(), b.Dy())
	}
}

func TestRandomLayers(t *testing.T) {
	store := newMemStore()
	store.addLayer("Glasses", "A.png", color.NRGBA{1, 1, 1, 255})
	store.addLayer("Overlay", "B.png", color.NRGBA{1, 1, 1, 255})

	c := NewComposer(store, testComposeConfig())
	layers, err := c.RandomLayers(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 2 {
		t.Fatalf("随机类别数 = %d", len(layers))
	}
	for name, files := range layers {
		if cat, ok := LookupCategory(name); !ok || cat.Structural {
			t.Fatalf("随机图层不应包含结构性类别: %s", name)
		}
		if len(files) != 1 {
			t.Fatalf("每个类别应取一张: %v", files)
		}
	}
}

func TestAttributeFile(t *testing.T) {
	cases := map[string]string{
		"og orange":  "Og Orange.png",
		"xp":         "Xp.png",
		"heart eyes": "Heart Eyes.png",
	}
	for in, want := range cases {
		if got := attributeFile(in); got != want {
			t.Errorf("attributeFile(%q) = %q, 期望 %q", in, got, want)
		}
	}
}
