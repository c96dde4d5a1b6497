package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foragers/vmath"
)

var (
	colorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	colorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	colorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	colorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	colorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	colorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	colorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
)

// Row heights per widget.
const (
	labelHeight    = 20
	barHeight      = 18
	cellsHeight    = 34
	angleHeight    = 44
	cellBarWidth   = 20
	cellBarHeight  = 30
	cellBarGap     = 2
	valueIndent    = 80
	cellsIndent    = 60
	scalarBarWidth = 120
	angleDialSize  = 40
)

// layout is a field resolved to the widget that will draw it.
type layout struct {
	widget Widget
	scalar float32
	values []float32
}

// resolve picks the widget for field. A value the tagged widget cannot
// show falls back to a label.
func resolve(field Field) layout {
	switch field.Widget {
	case WidgetBar:
		if values, ok := GetFloatSlice(field.Value); ok {
			return layout{widget: WidgetBar, values: values}
		}
		if v, ok := GetFloatValue(field.Value); ok {
			return layout{widget: WidgetBar, scalar: v}
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return layout{widget: WidgetAngle, scalar: v}
		}
	}
	return layout{widget: WidgetLabel}
}

func (l layout) height() int32 {
	switch {
	case l.widget == WidgetBar && l.values != nil:
		return cellsHeight
	case l.widget == WidgetBar:
		return barHeight
	case l.widget == WidgetAngle:
		return angleHeight
	default:
		return labelHeight
	}
}

// fieldHeight returns the height DrawField uses for field.
func fieldHeight(field Field) int32 {
	return resolve(field).height()
}

// DrawField renders a field and returns the height it used.
func DrawField(x, y int32, field Field) int32 {
	l := resolve(field)
	switch {
	case l.widget == WidgetBar && l.values != nil:
		drawCells(x, y, field.Name, l.values, GetMax(field.Options))
	case l.widget == WidgetBar:
		drawBar(x, y, field.Name, l.scalar, field.Options)
	case l.widget == WidgetAngle:
		drawAngle(x, y, field.Name, l.scalar)
	default:
		text := FormatValue(field.Value, field.Options["fmt"])
		rl.DrawText(fmt.Sprintf("%s: %s", field.Name, text), x, y, 16, colorText)
	}
	return l.height()
}

// fillRatio maps value onto [0, 1] of maxVal.
func fillRatio(value, maxVal float32) float32 {
	return vmath.Clamp(value/maxVal, 0, 1)
}

func drawBar(x, y int32, name string, value float32, options map[string]string) {
	ratio := fillRatio(value, GetMax(options))
	barX := x + valueIndent

	rl.DrawText(name, x, y, 14, colorTextDim)
	rl.DrawRectangle(barX, y, scalarBarWidth, 14, colorBarBg)

	fill := colorBarFill
	if ratio < 0.3 {
		fill = colorBarLow
	}
	rl.DrawRectangle(barX, y, int32(scalarBarWidth*ratio), 14, fill)
	rl.DrawText(FormatValue(value, options["fmt"]), barX+scalarBarWidth+5, y, 14, colorTextDim)
}

// drawCells renders one vertical bar per eye cell, filled from the bottom
// and shaded from low to full.
func drawCells(x, y int32, name string, values []float32, maxVal float32) {
	rl.DrawText(name, x, y, 14, colorTextDim)

	for i, v := range values {
		ratio := fillRatio(v, maxVal)
		bx := x + cellsIndent + int32(i)*(cellBarWidth+cellBarGap)
		fill := int32(cellBarHeight * ratio)

		rl.DrawRectangle(bx, y, cellBarWidth, cellBarHeight, colorBarBg)
		rl.DrawRectangle(bx, y+cellBarHeight-fill, cellBarWidth, fill, lerpColor(colorBarLow, colorBarFill, ratio))
	}
}

// drawAngle renders a dial pointing along radians, with +Y downward as on
// screen.
func drawAngle(x, y int32, name string, radians float32) {
	r := int32(angleDialSize / 2)
	cx, cy := x+cellsIndent+r, y+r

	rl.DrawText(name, x, cy-7, 14, colorTextDim)
	rl.DrawCircle(cx, cy, float32(r), colorAngleBg)
	rl.DrawCircleLines(cx, cy, float32(r), colorTextDim)

	heading := vmath.Heading(radians).Scale(float32(r - 4))
	center := rl.Vector2{X: float32(cx), Y: float32(cy)}
	rl.DrawLineEx(center, rl.Vector2{X: center.X + heading.X, Y: center.Y + heading.Y}, 2, colorAngleNeedle)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.2f rad / %.0f deg", radians, degrees), cx+r+5, cy-7, 14, colorTextDim)
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(p, q uint8) uint8 { return uint8(float32(p) + (float32(q)-float32(p))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
