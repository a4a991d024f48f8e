package engine

import "github.com/gridscape/gridscape/common/vmath"

// GridVertices returns one vertex per integer lattice point of a
// dimension×dimension grid centered at the origin: (dimension+1)² points in
// row-major order, rows ascending along the depth axis, columns ascending
// along the lateral axis.
//
// dimension must be positive and small enough that every vertex is
// addressable with a 16-bit index; Config.Validate enforces the bound before
// this is ever called.
func GridVertices(dimension int) []vmath.V2 {
	half := float32(dimension) / 2
	verts := make([]vmath.V2, 0, (dimension+1)*(dimension+1))
	for i := 0; i <= dimension; i++ {
		for j := 0; j <= dimension; j++ {
			verts = append(verts, vmath.NewV2(float32(j)-half, float32(i)-half))
		}
	}
	return verts
}

// GridIndices returns 16-bit indices grouping the grid into one triangle
// strip per row: dimension strips of 2·dimension+2 indices each. A draw call
// consumes row r at byte offset r·(2·dimension+2)·2.
func GridIndices(dimension int) []uint16 {
	stripLen := 2*dimension + 2
	indices := make([]uint16, 0, dimension*stripLen)
	for i := 0; i < dimension; i++ {
		start1 := i * (dimension + 1)
		start2 := (i + 1) * (dimension + 1)
		indices = append(indices, uint16(start1), uint16(start2))
		for j := 1; j <= dimension; j++ {
			indices = append(indices, uint16(start1+j), uint16(start2+j))
		}
	}
	return indices
}

// FlattenV2 lays out vertices as interleaved x,y scalars for buffer upload.
func FlattenV2(verts []vmath.V2) []float32 {
	out := make([]float32, 0, 2*len(verts))
	for _, v := range verts {
		out = append(out, v.X, v.Y)
	}
	return out
}
