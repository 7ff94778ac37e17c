package geo

import "math"

// Bán kính trái đất (km)
const earthRadiusKm = 6371

// DistanceKm tính khoảng cách đường chim bay (Haversine) giữa hai tọa độ.
// Trả về nil nếu thiếu bất kỳ tọa độ nào — thiếu tọa độ là chuyện bình thường
// trong dữ liệu, không phải lỗi.
func DistanceKm(lat1, lon1, lat2, lon2 *float64) *float64 {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return nil
	}
	d := Haversine(*lat1, *lon1, *lat2, *lon2)
	return &d
}

// Haversine khoảng cách great-circle (km) giữa hai điểm.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
