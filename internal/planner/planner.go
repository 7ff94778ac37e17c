package planner

import (
	"math"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/geo"
)

// Stop một điểm dừng trong lộ trình.
type Stop struct {
	Restaurant           models.Restaurant `json:"restaurant"`
	Order                int               `json:"order"`
	DistanceFromPrevious float64           `json:"distance_from_previous"` // km, làm tròn 2 chữ số
}

// Plan lộ trình hoàn chỉnh.
type Plan struct {
	Stops           []Stop  `json:"route"`
	TotalDistanceKm float64 `json:"total_distance"`
}

// PlanRoute sắp xếp lộ trình theo nearest-neighbor: từ vị trí hiện tại
// chọn quán gần nhất chưa ghé, lặp lại. Quán không có tọa độ bị bỏ qua.
func PlanRoute(startLat, startLon float64, restaurants []models.Restaurant) Plan {
	remaining := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if r.Lat != nil && r.Lon != nil {
			remaining = append(remaining, r)
		}
	}

	plan := Plan{Stops: make([]Stop, 0, len(remaining))}
	curLat, curLon := startLat, startLon

	for len(remaining) > 0 {
		best := -1
		bestDist := math.Inf(1)
		for i, r := range remaining {
			d := geo.Haversine(curLat, curLon, *r.Lat, *r.Lon)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}

		next := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)

		plan.Stops = append(plan.Stops, Stop{
			Restaurant:           next,
			Order:                len(plan.Stops) + 1,
			DistanceFromPrevious: round2(bestDist),
		})
		plan.TotalDistanceKm += bestDist
		curLat, curLon = *next.Lat, *next.Lon
	}

	plan.TotalDistanceKm = round2(plan.TotalDistanceKm)
	return plan
}

// EstimatedMinutes ước lượng thời gian di chuyển (30 km/h trong phố)
// cộng 20 phút dừng ăn mỗi quán.
func EstimatedMinutes(p Plan) int {
	travel := p.TotalDistanceKm / 30 * 60
	return int(math.Round(travel)) + 20*len(p.Stops)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
