package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
)

// Snapshot ảnh chụp bất biến của dữ liệu quán ăn + menu.
// Nạp một lần lúc khởi động (hoặc mỗi lần reload), engine chỉ đọc.
type Snapshot struct {
	// Restaurants giữ nguyên thứ tự nạp — thứ tự này là tie-break
	// cuối cùng khi sắp xếp kết quả.
	Restaurants []models.Restaurant

	byID  map[string]*models.Restaurant
	menus map[string][]models.MenuItem
}

// NewSnapshot build index từ danh sách quán và map menu theo id.
// Menu của id không tồn tại trong danh sách quán vẫn được giữ —
// đơn giản là không join tới được, không phải lỗi.
func NewSnapshot(restaurants []models.Restaurant, menus map[string][]models.MenuItem) *Snapshot {
	s := &Snapshot{
		Restaurants: restaurants,
		byID:        make(map[string]*models.Restaurant, len(restaurants)),
		menus:       menus,
	}
	if s.menus == nil {
		s.menus = map[string][]models.MenuItem{}
	}
	for i := range s.Restaurants {
		s.byID[s.Restaurants[i].ID.String()] = &s.Restaurants[i]
	}
	return s
}

// ByID tra quán theo id (luôn so sánh dạng chuỗi).
func (s *Snapshot) ByID(id string) (*models.Restaurant, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Menu trả về menu của quán; quán không có menu trả về slice rỗng.
func (s *Snapshot) Menu(restaurantID string) []models.MenuItem {
	return s.menus[restaurantID]
}

// Len số quán trong snapshot.
func (s *Snapshot) Len() int { return len(s.Restaurants) }

// menuEntry chấp nhận cả hai dạng dữ liệu menus.json từng tồn tại:
// "1": [ {...} ]  hoặc  "1": { "menu": [ {...} ] }.
type menuEntry struct {
	items []models.MenuItem
}

func (m *menuEntry) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &m.items); err == nil {
		return nil
	}
	var wrapped struct {
		Menu []models.MenuItem `json:"menu"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	m.items = wrapped.Menu
	return nil
}

// Load đọc snapshot từ hai file JSON.
// File restaurants hỏng hoặc thiếu là lỗi cấu hình (fatal); file menus
// hỏng hoặc thiếu chỉ làm mất tín hiệu dish-match nên chỉ cảnh báo.
func Load(restaurantsPath, menusPath string, logger *zap.Logger) (*Snapshot, error) {
	rb, err := os.ReadFile(restaurantsPath)
	if err != nil {
		return nil, fmt.Errorf("đọc file restaurants: %w", err)
	}
	var restaurants []models.Restaurant
	if err := json.Unmarshal(rb, &restaurants); err != nil {
		return nil, fmt.Errorf("parse file restaurants: %w", err)
	}

	menus := map[string][]models.MenuItem{}
	if mb, err := os.ReadFile(menusPath); err != nil {
		logger.Warn("Không đọc được file menus, tìm kiếm theo món sẽ không có dữ liệu",
			zap.String("path", menusPath), zap.Error(err))
	} else {
		var raw map[string]menuEntry
		if err := json.Unmarshal(mb, &raw); err != nil {
			logger.Warn("File menus không hợp lệ, bỏ qua", zap.String("path", menusPath), zap.Error(err))
		} else {
			for id, entry := range raw {
				menus[id] = entry.items
			}
		}
	}

	logger.Info("Đã nạp catalog",
		zap.Int("restaurants", len(restaurants)),
		zap.Int("menus", len(menus)))
	return NewSnapshot(restaurants, menus), nil
}

// Store giữ snapshot hiện hành và cho phép thay thế nguyên tử khi
// reload: request đang chạy thấy trọn vẹn snapshot cũ hoặc mới,
// không bao giờ thấy trạng thái trộn lẫn.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Current snapshot hiện hành; gọi một lần ở đầu mỗi request và dùng
// cùng một con trỏ cho cả request.
func (s *Store) Current() *Snapshot { return s.current.Load() }

// Swap thay snapshot mới.
func (s *Store) Swap(next *Snapshot) { s.current.Store(next) }
