package tile

type (
	// Rendering describes how to display a tile.
	Rendering struct {
		// Kind is the type of rendering.
		Kind RenderingKind `json:"kind"`
		// Color is the color of color renderings.
		Color string `json:"value,omitempty"`
		// Asset is the identifier of the image of image renderings.
		Asset string `json:"assetKey,omitempty"`
	}

	// RenderingKind is the type of a rendering.
	RenderingKind string
)

const (
	// ColorRendering is a tile that is filled with a color.
	ColorRendering RenderingKind = "color"
	// ImageRendering is a tile that is drawn as an image.
	ImageRendering RenderingKind = "image"
	// BlockedColor is shown when previewing tiles whose owner is hidden.
	BlockedColor = "red"
	// IndicatorOnAsset is the image of a lit indicator.
	IndicatorOnAsset = "indicator-on"
	// indicatorOffColor is the color of an unlit indicator.
	indicatorOffColor = "#4b3621"
)

// Colored creates a rendering of the color.
func Colored(color string) Rendering {
	return Rendering{
		Kind:  ColorRendering,
		Color: color,
	}
}

// Image creates a rendering of the image asset.
func Image(asset string) Rendering {
	return Rendering{
		Kind:  ImageRendering,
		Asset: asset,
	}
}

// PreviewRender returns how the tile is shown to players that are planning moves.
// Most tiles are previewed the same way they are rendered.
func PreviewRender(t Tile, a Arena) Rendering {
	if pr, ok := t.(PreviewRenderer); ok {
		return pr.PreviewRender(a)
	}
	return t.Render(a)
}

// indicatorRendering renders an indicator that is on or off.
func indicatorRendering(on bool) Rendering {
	if on {
		return Image(IndicatorOnAsset)
	}
	return Colored(indicatorOffColor)
}
