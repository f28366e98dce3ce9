package renderer

// Tile is a rectangular region of the film assigned to one worker at a time
type Tile struct {
	X0, Y0 int // Inclusive top-left corner
	X1, Y1 int // Exclusive bottom-right corner
}

// Width returns the tile width in pixels
func (t Tile) Width() int { return t.X1 - t.X0 }

// Height returns the tile height in pixels
func (t Tile) Height() int { return t.Y1 - t.Y0 }

// PixelCount returns the number of pixels the tile covers
func (t Tile) PixelCount() int { return t.Width() * t.Height() }

// MakeTiles partitions a width x height film into tiles of at most tileSize
// on each side, in row-major order. Edge tiles are clipped to the film.
func MakeTiles(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	var tiles []Tile
	for y := 0; y < height; y += tileSize {
		y1 := y + tileSize
		if y1 > height {
			y1 = height
		}
		for x := 0; x < width; x += tileSize {
			x1 := x + tileSize
			if x1 > width {
				x1 = width
			}
			tiles = append(tiles, Tile{X0: x, Y0: y, X1: x1, Y1: y1})
		}
	}
	return tiles
}
