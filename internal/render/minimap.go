// Package render draws lobby snapshots as minimap images.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"spider-kingdom/internal/protocol"
)

const minimapSize = 512

// Indexed by the wire item type: health, speed boost, shield, web ammo, rope ammo.
var itemColors = []color.RGBA{
	{80, 220, 100, 255},
	{255, 200, 50, 255},
	{100, 160, 255, 255},
	{220, 220, 220, 255},
	{190, 130, 70, 255},
}

// Minimap renders one lobby snapshot scaled down to a square PNG-sized image.
// A nil snapshot yields an empty map.
func Minimap(snap *protocol.Update, mapSize float64) image.Image {
	dc := gg.NewContext(minimapSize, minimapSize)
	scale := float64(minimapSize) / mapSize

	drawBackground(dc)
	drawGrid(dc, mapSize, scale)

	if snap == nil {
		return dc.Image()
	}

	for _, it := range snap.Items {
		c := color.RGBA{200, 200, 200, 255}
		if it.Type >= 0 && it.Type < len(itemColors) {
			c = itemColors[it.Type]
		}
		dc.SetColor(c)
		dc.DrawCircle(it.X*scale, it.Y*scale, 2)
		dc.Fill()
	}

	for _, pr := range snap.Projectiles {
		dc.SetColor(color.RGBA{255, 255, 255, 200})
		dc.DrawCircle(pr.X*scale, pr.Y*scale, 1.5)
		dc.Fill()
	}

	for _, p := range snap.Players {
		drawPlayer(dc, p, scale)
	}

	return dc.Image()
}

func drawBackground(dc *gg.Context) {
	dc.SetColor(color.RGBA{15, 15, 25, 255})
	dc.DrawRectangle(0, 0, minimapSize, minimapSize)
	dc.Fill()
}

func drawGrid(dc *gg.Context, mapSize, scale float64) {
	dc.SetColor(color.RGBA{35, 35, 50, 255})
	dc.SetLineWidth(1)

	step := 500.0 * scale
	for x := step; x < minimapSize; x += step {
		dc.DrawLine(x, 0, x, minimapSize)
		dc.Stroke()
	}
	for y := step; y < minimapSize; y += step {
		dc.DrawLine(0, y, minimapSize, y)
		dc.Stroke()
	}
}

func drawPlayer(dc *gg.Context, p protocol.PlayerState, scale float64) {
	x, y := p.X*scale, p.Y*scale
	r := p.R * scale
	if r < 3 {
		r = 3
	}

	if p.Dead {
		dc.SetColor(color.RGBA{90, 90, 90, 180})
		dc.DrawCircle(x, y, r)
		dc.Stroke()
		return
	}

	if p.Shielded {
		dc.SetColor(color.RGBA{100, 160, 255, 90})
		dc.DrawCircle(x, y, r+2)
		dc.Fill()
	}

	body := color.RGBA{200, 60, 60, 255}
	if p.VIP {
		body = color.RGBA{230, 180, 40, 255}
	}
	dc.SetColor(body)
	dc.DrawCircle(x, y, r)
	dc.Fill()

	if p.Name != "" {
		dc.SetColor(color.White)
		dc.DrawStringAnchored(p.Name, x, y-r-4, 0.5, 0.5)
	}
}
