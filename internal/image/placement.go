package image

import "schemecard/internal/config"

type Size struct {
	Width, Height float64
}

// Placement is where an image is drawn, in canvas pixels, before clipping.
type Placement struct {
	DrawWidth, DrawHeight float64
	DrawX, DrawY          float64
}

// ComputeCoverPlacement scales img so it covers area with no letterboxing,
// magnifies by zoom around the area center and then shifts by the pan offsets.
// Neither zoom nor pan is clamped. img must have a non-zero width and height.
func ComputeCoverPlacement(img Size, area config.Rectangle, zoom, panX, panY float64) Placement {
	imgRatio := img.Width / img.Height
	areaRatio := area.Width / area.Height

	var baseWidth, baseHeight float64
	if imgRatio > areaRatio {
		baseHeight = area.Height
		baseWidth = img.Width * (area.Height / img.Height)
	} else {
		baseWidth = area.Width
		baseHeight = img.Height * (area.Width / img.Width)
	}

	drawWidth := baseWidth * zoom
	drawHeight := baseHeight * zoom

	centerOffsetX := (drawWidth - area.Width) / 2
	centerOffsetY := (drawHeight - area.Height) / 2

	return Placement{
		DrawWidth:  drawWidth,
		DrawHeight: drawHeight,
		DrawX:      area.X - centerOffsetX + panX,
		DrawY:      area.Y - centerOffsetY + panY,
	}
}
