package compose

import "sort"

// Category 一个图层类别的合成描述
// ZIndex 决定叠加顺序，Structural 标记是否会改变整体形象，
// Required 的类别在重组模式下缺省时使用 DefaultFile 补齐
type Category struct {
	Name        string
	ZIndex      int
	Structural  bool
	Required    bool
	DefaultFile string
}

// categories 全量类别表，和素材目录一一对应
var categories = []Category{
	{Name: "Background", ZIndex: 0, Structural: true},
	{Name: "UnclothedBase", ZIndex: 1, Structural: true},
	{Name: "Face", ZIndex: 2, Structural: true, Required: true, DefaultFile: "Blush.png"},
	{Name: "Eyes", ZIndex: 3, Structural: true},
	{Name: "Eye Color", ZIndex: 4, Structural: true},
	{Name: "Mouth", ZIndex: 4, Required: true, DefaultFile: "Flat.png"},
	{Name: "Neck", ZIndex: 5, Structural: true},
	{Name: "Necklaces", ZIndex: 5},
	{Name: "Shirt", ZIndex: 6, Structural: true},
	{Name: "Hair", ZIndex: 7, Structural: true},
	{Name: "Brows", ZIndex: 8, Structural: true, Required: true, DefaultFile: "Flat.png"},
	{Name: "Earrings", ZIndex: 9},
	{Name: "Face Decoration", ZIndex: 10},
	{Name: "Glasses", ZIndex: 10},
	{Name: "Hat", ZIndex: 11, Structural: true},
	{Name: "Overlay", ZIndex: 13},
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, len(categories))
	for _, c := range categories {
		m[c.Name] = c
	}
	return m
}()

// LookupCategory 按名称查找类别
func LookupCategory(name string) (Category, bool) {
	c, ok := categoryByName[name]
	return c, ok
}

// AllCategories 全部类别，按 z-index 升序
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// DecorativeCategories 可直接叠加在底图上的类别
func DecorativeCategories() []string {
	var names []string
	for _, c := range AllCategories() {
		if !c.Structural {
			names = append(names, c.Name)
		}
	}
	return names
}

// HasStructural 判断请求的图层里是否含结构性类别
func HasStructural(layers map[string][]string) bool {
	for name := range layers {
		if c, ok := categoryByName[name]; ok && c.Structural {
			return true
		}
	}
	return false
}
