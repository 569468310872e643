package soft

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const hudFontSize = 14

var (
	hudFontOnce sync.Once
	hudFont     *truetype.Font
	hudFontErr  error
)

func loadHUDFont() (*truetype.Font, error) {
	hudFontOnce.Do(func() {
		hudFont, hudFontErr = truetype.Parse(goregular.TTF)
	})
	return hudFont, hudFontErr
}

// hud draws the overlay text in the top left corner of a frame.
type hud struct {
	ctx *freetype.Context
}

func newHUD() (*hud, error) {
	f, err := loadHUDFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse HUD font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(hudFontSize)
	ctx.SetHinting(font.HintingFull)
	ctx.SetSrc(image.NewUniform(color.RGBA{R: 0xe0, G: 0xe6, B: 0xf0, A: 0xff}))
	return &hud{ctx: ctx}, nil
}

func (h *hud) draw(dst *image.RGBA, lines ...string) error {
	h.ctx.SetDst(dst)
	h.ctx.SetClip(dst.Bounds())

	lineHeight := int(h.ctx.PointToFixed(hudFontSize*1.4) >> 6)
	pt := freetype.Pt(10, 10+lineHeight)
	for _, line := range lines {
		if _, err := h.ctx.DrawString(line, pt); err != nil {
			return err
		}
		pt.Y += h.ctx.PointToFixed(hudFontSize * 1.4)
	}
	return nil
}
