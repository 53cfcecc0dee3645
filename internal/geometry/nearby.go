package geometry

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/config"
)

// AreaLocator answers proximity questions over the district gazetteer.
// It backs the "try a nearby area" suggestion shown when a search in a
// recognized district comes back empty.
type AreaLocator struct {
	logger *logrus.Logger
}

func NewAreaLocator(logger *logrus.Logger) *AreaLocator {
	return &AreaLocator{logger: logger}
}

// Nearest returns up to limit district names ordered by distance from
// the named district. The district itself is excluded, and alias
// entries sharing a center (e.g. "JVC" and its full name) collapse to
// whichever appears first in the gazetteer. Unknown names yield nil.
func (l *AreaLocator) Nearest(name string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	origin := config.GetAreaByName(name)
	if origin == nil || len(origin.Center) != 2 {
		l.logger.WithField("area", name).Debug("No gazetteer entry for area")
		return nil
	}

	originPoint := orb.Point{origin.Center[1], origin.Center[0]}

	type candidate struct {
		name     string
		distance float64
	}

	seen := map[string]bool{
		centerKey(origin.Center): true,
	}

	var candidates []candidate
	for _, area := range config.SupportedAreas {
		if len(area.Center) != 2 {
			continue
		}

		key := centerKey(area.Center)
		if seen[key] {
			continue
		}
		seen[key] = true

		point := orb.Point{area.Center[1], area.Center[0]}
		candidates = append(candidates, candidate{
			name:     area.Name,
			distance: geo.DistanceHaversine(originPoint, point),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	names := make([]string, 0, limit)
	for _, c := range candidates[:limit] {
		names = append(names, c.name)
	}
	return names
}

func centerKey(center []float64) string {
	return fmt.Sprintf("%.6f,%.6f", center[0], center[1])
}
