package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foragers/neural"
)

// OutputLabels names the brain's two outputs.
var OutputLabels = []string{"Speed", "Turn"}

// NetworkColors for activation visualization.
var (
	ColorNodeInactive = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorNodePositive = rl.Color{R: 255, G: 100, B: 100, A: 255}
	ColorNodeNegative = rl.Color{R: 100, G: 100, B: 255, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// edgeThreshold hides near-zero weights.
const edgeThreshold = 0.1

// DrawNetworkDiagram renders the brain with the activations produced by vision.
func DrawNetworkDiagram(x, y, width, height int32, brain *neural.Brain, vision []float32) {
	if brain == nil || len(vision) != brain.Topology().Inputs() {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	topology := brain.Topology()
	acts := brain.Trace(vision)
	layers := brain.Layers()

	colWidth := width / int32(len(topology))
	nodeRadius := float32(5)

	nodes := make([][]rl.Vector2, len(topology))
	for l, n := range topology {
		colX := float32(x) + float32(colWidth)*float32(l) + float32(colWidth)/2
		spacing := float32(height-20) / float32(n)
		offset := spacing / 2
		nodes[l] = make([]rl.Vector2, n)
		for i := range n {
			nodes[l][i] = rl.Vector2{X: colX, Y: float32(y) + 10 + offset + float32(i)*spacing}
		}
	}

	for l, layer := range layers {
		w := layer.Weights
		for o := range w.Rows {
			for i := range w.Cols {
				weight := w.Data[o*w.Stride+i]
				if absFloat(weight) < edgeThreshold {
					continue
				}
				drawEdge(nodes[l][i], nodes[l+1][o], weight)
			}
		}
	}

	for l := range nodes {
		for i, pos := range nodes[l] {
			radius := nodeRadius
			if l == len(nodes)-1 {
				radius += 2
			}
			drawNode(pos, radius, acts[l][i])
		}
	}

	for i, pos := range nodes[0] {
		label := fmt.Sprintf("c%d", i)
		labelWidth := rl.MeasureText(label, 10)
		rl.DrawText(label, int32(pos.X-nodeRadius)-labelWidth-4, int32(pos.Y)-5, 10, ColorLabelDim)
	}
	last := nodes[len(nodes)-1]
	for i, pos := range last {
		if i < len(OutputLabels) {
			rl.DrawText(OutputLabels[i], int32(pos.X+nodeRadius+6), int32(pos.Y)-5, 10, ColorLabelDim)
		}
	}
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius, activation float32) {
	color := activationColor(activation)
	rl.DrawCircleV(pos, radius, color)
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection between nodes.
func drawEdge(from, to rl.Vector2, weight float32) {
	thickness := min(max(absFloat(weight)*1.5, 0.5), 3)

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(40+int(absFloat(weight)*40), 150))

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float32) rl.Color {
	if activation == 0 {
		return ColorNodeInactive
	}
	t := min(absFloat(activation), 1)
	if activation > 0 {
		return rl.Color{
			R: uint8(60 + t*195),
			G: uint8(60 - t*30),
			B: uint8(60 - t*30),
			A: 255,
		}
	}
	return rl.Color{
		R: uint8(60 - t*30),
		G: uint8(60 - t*30),
		B: uint8(60 + t*195),
		A: 255,
	}
}

func absFloat(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
