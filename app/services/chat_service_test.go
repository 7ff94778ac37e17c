package services

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
)

func chatFixtureStore() *catalog.Store {
	restaurants := []models.Restaurant{
		{ID: models.FlexID("1"), Name: "Phở Hà Nội", Address: "Quận 1, TP. Hồ Chí Minh"},
		{ID: models.FlexID("2"), Name: "Cơm Tấm Ba Ghiền", Address: "Quận 3, TP. Hồ Chí Minh"},
	}
	menus := map[string][]models.MenuItem{
		"1": {{DishName: "Phở bò tái", DishTags: []string{"phở", "bò"}}},
		"2": {{DishName: "Cơm tấm sườn bì", DishTags: []string{"cơm tấm"}}},
	}
	return catalog.NewStore(catalog.NewSnapshot(restaurants, menus))
}

func newTestChatService(t *testing.T, opts ChatOptions) *ChatService {
	t.Helper()
	cs, err := NewChatService(chatFixtureStore(), opts, zap.NewNop())
	if err != nil {
		t.Fatalf("NewChatService: %v", err)
	}
	return cs
}

func TestChat_NotConfigured(t *testing.T) {
	cs := newTestChatService(t, ChatOptions{})
	if _, err := cs.Chat(context.Background(), "", "phở ngon ở đâu"); err != ErrChatNotConfigured {
		t.Errorf("err = %v, want ErrChatNotConfigured", err)
	}
}

func TestRelevantRestaurants_ByDish(t *testing.T) {
	cs := newTestChatService(t, ChatOptions{})

	matched := cs.relevantRestaurants("quán nào có phở bò ngon", 10)
	if len(matched) != 1 || matched[0].Name != "Phở Hà Nội" {
		t.Errorf("matched = %v, want only Phở Hà Nội", matched)
	}
}

func TestRelevantRestaurants_Diacritics(t *testing.T) {
	cs := newTestChatService(t, ChatOptions{})

	// câu hỏi không dấu vẫn phải match menu có dấu
	matched := cs.relevantRestaurants("tim quan com tam", 10)
	if len(matched) != 1 || matched[0].Name != "Cơm Tấm Ba Ghiền" {
		t.Errorf("matched = %v, want only Cơm Tấm Ba Ghiền", matched)
	}
}

func TestSystemPrompt_IncludesCatalogContext(t *testing.T) {
	cs := newTestChatService(t, ChatOptions{})

	prompt := cs.systemPrompt("ăn phở ở đâu")
	if !strings.Contains(prompt, "Phở Hà Nội") {
		t.Errorf("prompt thiếu dữ liệu quán match:\n%s", prompt)
	}
	if strings.Contains(prompt, "Cơm Tấm Ba Ghiền") {
		t.Error("prompt không được chứa quán không liên quan")
	}
}
