package scarve

// Orientation designates the direction a seam runs across the image.
type Orientation int

const (
	// Horizontal seams run left to right, one row index per column.
	Horizontal Orientation = iota
	// Vertical seams run top to bottom, one column index per row.
	Vertical
)

// String implements the Stringer interface.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "unknown"
}

// Seam holds a single connected low-energy path found by the carver.
// For a vertical seam Path[y] is the column removed from row y; for a
// horizontal seam Path[x] is the row removed from column x. Energy is
// the accumulated cost of the whole path.
type Seam struct {
	Orientation Orientation
	Energy      float64
	Path        []int
}

// SeamHistory records the removed seams in removal order so they can
// be replayed over the carved image afterwards.
type SeamHistory []Seam
