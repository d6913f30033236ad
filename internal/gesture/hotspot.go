package gesture

import "github.com/chrisdamba/foodstory/internal/models"

// HitHotspot returns the hotspot whose centre lies within radius pixels of p
// in a container of width by height, preferring the closest one.
func HitHotspot(hotspots []models.Hotspot, p Point, width, height, radius float64) *models.Hotspot {
	var best *models.Hotspot
	bestDist := radius
	for i := range hotspots {
		h := &hotspots[i]
		centre := Point{X: h.X * width, Y: h.Y * height}
		if d := centre.Distance(p); d <= bestDist {
			best, bestDist = h, d
		}
	}
	return best
}
