package compose

import (
	"ContentStudio/internal/api/config"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
)

// 字体风格
const (
	StyleImpact  = "impact"
	StyleGlow    = "glow"
	StyleChinese = "chinese"
)

const (
	minFontSize  = 30
	outlineWidth = 3
	glowWidth    = 8
)

var ErrFontNotFound = errors.New("字体文件缺失")

// CaptionOptions 文字绘制选项
type CaptionOptions struct {
	Style        string
	TextColor    string
	OutlineColor string
	GlowColor    string
	AllCaps      bool
}

func DefaultCaptionOptions() CaptionOptions {
	return CaptionOptions{
		Style:        StyleImpact,
		TextColor:    "#FFFFFF",
		OutlineColor: "#000000",
		GlowColor:    "#00FFFF",
		AllCaps:      true,
	}
}

// Captioner 经典上下字幕渲染器
type Captioner struct {
	fonts map[string]*truetype.Font
}

// NewCaptioner 按配置的候选路径加载各风格字体，一个都找不到的风格不注册
func NewCaptioner(cfg config.CaptionConfig) (*Captioner, error) {
	c := &Captioner{fonts: make(map[string]*truetype.Font)}

	for style, paths := range map[string][]string{
		StyleImpact:  cfg.ImpactFonts,
		StyleGlow:    cfg.GlowFonts,
		StyleChinese: cfg.CJKFonts,
	} {
		f, err := loadFont(paths)
		if err != nil {
			continue
		}
		c.fonts[style] = f
	}

	if len(c.fonts) == 0 {
		return nil, ErrFontNotFound
	}
	return c, nil
}

func loadFont(paths []string) (*truetype.Font, error) {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "字体解析失败 %s", p)
		}
		return f, nil
	}
	return nil, ErrFontNotFound
}

// Styles 已加载的字体风格
func (c *Captioner) Styles() []string {
	var out []string
	for _, s := range []string{StyleImpact, StyleGlow, StyleChinese} {
		if _, ok := c.fonts[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// AddCaption 在图片上绘制顶部和底部文字
// 文字含 CJK 字符时自动切换中文字体且不做大写转换
func (c *Captioner) AddCaption(img image.Image, topText, bottomText string, opts CaptionOptions) (image.Image, error) {
	if topText == "" && bottomText == "" {
		return img, nil
	}

	style := opts.Style
	if style == "" {
		style = StyleImpact
	}
	cjk := hasCJK(topText + bottomText)
	if cjk {
		style = StyleChinese
	}

	f, ok := c.fonts[style]
	if !ok {
		// 风格字体缺失时退回任意可用字体
		for _, fb := range c.fonts {
			f = fb
			break
		}
		if f == nil {
			return nil, ErrFontNotFound
		}
	}

	if opts.AllCaps && !cjk {
		topText = strings.ToUpper(topText)
		bottomText = strings.ToUpper(bottomText)
	}

	dc := gg.NewContextForImage(img)
	w, h := dc.Width(), dc.Height()
	glow := style == StyleGlow

	if topText != "" {
		size := fontSize(topText, w)
		dc.SetFontFace(newFace(f, size))
		tw, th := dc.MeasureString(topText)
		x := (float64(w) - tw) / 2
		y := float64(h)/20 + th
		c.drawText(dc, topText, x, y, opts, glow)
	}

	if bottomText != "" {
		size := fontSize(bottomText, w)
		dc.SetFontFace(newFace(f, size))
		tw, th := dc.MeasureString(bottomText)
		x := (float64(w) - tw) / 2
		y := float64(h) - float64(h)/20 - th*0.2
		c.drawText(dc, bottomText, x, y, opts, glow)
	}

	return dc.Image(), nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func (c *Captioner) drawText(dc *gg.Context, text string, x, y float64, opts CaptionOptions, glow bool) {
	if glow {
		c.drawGlow(dc, text, x, y, opts)
		return
	}

	// 八方向重复绘制实现描边
	outline := hexRGB(opts.OutlineColor, color.NRGBA{0, 0, 0, 255})
	dc.SetColor(outline)
	for dx := -outlineWidth; dx <= outlineWidth; dx++ {
		for dy := -outlineWidth; dy <= outlineWidth; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawString(text, x+float64(dx), y+float64(dy))
		}
	}

	dc.SetColor(hexRGB(opts.TextColor, color.NRGBA{255, 255, 255, 255}))
	dc.DrawString(text, x, y)
}

// drawGlow 深色阴影打底，外层到内层画渐变光晕，主文字用光晕色
func (c *Captioner) drawGlow(dc *gg.Context, text string, x, y float64, opts CaptionOptions) {
	dc.SetColor(color.NRGBA{0, 0, 0, 200})
	for dx := -3; dx <= 3; dx++ {
		for dy := -3; dy <= 3; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawString(text, x+float64(dx), y+float64(dy))
		}
	}

	g := hexRGB(opts.GlowColor, color.NRGBA{0, 255, 255, 255})
	for i := glowWidth; i >= 1; i-- {
		alpha := uint8(255 * (1 - float64(i)/float64(glowWidth)))
		dc.SetColor(color.NRGBA{g.R, g.G, g.B, alpha})
		for dx := -i; dx <= i; dx++ {
			for dy := -i; dy <= i; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawString(text, x+float64(dx), y+float64(dy))
			}
		}
	}

	dc.SetColor(color.NRGBA{g.R, g.G, g.B, 255})
	dc.DrawString(text, x, y)
}

// fontSize 基准为宽度的 1/10，长文字缩小，保底 30px
func fontSize(text string, imageWidth int) float64 {
	size := float64(imageWidth) / 10
	if len([]rune(text)) > 20 {
		size *= 0.8
	}
	if size < minFontSize {
		size = minFontSize
	}
	return size
}

func hasCJK(text string) bool {
	for _, r := range text {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

// hexRGB 解析 #RRGGBB，失败时用兜底色
func hexRGB(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}
