package geometry

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// NewSphereMesh tessellates a sphere into triangles with smooth per-vertex
// normals, using latitudeBands x longitudeBands quads split in two. Used by
// the canned test scenes; real meshes arrive from the scene loader.
func NewSphereMesh(center core.Vec3, radius float64, latitudeBands, longitudeBands int, mat core.Material) []*Triangle {
	if latitudeBands < 2 {
		latitudeBands = 2
	}
	if longitudeBands < 3 {
		longitudeBands = 3
	}

	vertex := func(lat, lon int) (core.Vec3, core.Vec3) {
		theta := math.Pi * float64(lat) / float64(latitudeBands)
		phi := 2 * math.Pi * float64(lon) / float64(longitudeBands)

		normal := core.NewVec3(
			math.Sin(theta)*math.Cos(phi),
			math.Cos(theta),
			math.Sin(theta)*math.Sin(phi),
		)
		return center.Add(normal.Multiply(radius)), normal
	}

	var tris []*Triangle
	for lat := 0; lat < latitudeBands; lat++ {
		for lon := 0; lon < longitudeBands; lon++ {
			p00, n00 := vertex(lat, lon)
			p01, n01 := vertex(lat, lon+1)
			p10, n10 := vertex(lat+1, lon)
			p11, n11 := vertex(lat+1, lon+1)

			// Poles collapse one triangle of each quad.
			if lat > 0 {
				tris = append(tris, NewTriangleWithNormals(p00, p01, p11, n00, n01, n11, mat))
			}
			if lat < latitudeBands-1 {
				tris = append(tris, NewTriangleWithNormals(p00, p11, p10, n00, n11, n10, mat))
			}
		}
	}
	return tris
}

// NewQuadMesh builds the two triangles of a parallelogram defined by a
// corner and two edge vectors
func NewQuadMesh(corner, edgeU, edgeV core.Vec3, mat core.Material) []*Triangle {
	p0 := corner
	p1 := corner.Add(edgeU)
	p2 := corner.Add(edgeU).Add(edgeV)
	p3 := corner.Add(edgeV)
	return []*Triangle{
		NewTriangle(p0, p1, p2, mat),
		NewTriangle(p0, p2, p3, mat),
	}
}
