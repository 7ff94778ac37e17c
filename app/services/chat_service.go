package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
	"github.com/KhoaTranFitus/backend-food-app/internal/normalizer"
)

// ErrChatNotConfigured chatbot chưa có API key
var ErrChatNotConfigured = errors.New("chatbot chưa được cấu hình API key")

// ChatOptions cấu hình model cho ChatService.
type ChatOptions struct {
	APIKey      string
	BaseURL     string // rỗng = endpoint OpenAI mặc định
	Model       string
	MaxTokens   int
	Temperature float64
	History     int // số message giữ lại mỗi conversation
}

// ChatService tư vấn ẩm thực qua LLM, gắn context là dữ liệu quán
// trong catalog. Lịch sử hội thoại giữ in-memory theo conversation id,
// LRU để không phình vô hạn.
type ChatService struct {
	client        *openai.Client
	store         *catalog.Store
	opts          ChatOptions
	conversations *lru.Cache[string, []openai.ChatCompletionMessage]
	logger        *zap.Logger
}

// NewChatService tạo mới ChatService. APIKey rỗng thì service vẫn tạo
// được nhưng Chat trả ErrChatNotConfigured.
func NewChatService(store *catalog.Store, opts ChatOptions, logger *zap.Logger) (*ChatService, error) {
	conversations, err := lru.New[string, []openai.ChatCompletionMessage](256)
	if err != nil {
		return nil, err
	}

	var client *openai.Client
	if opts.APIKey != "" {
		cfg := openai.DefaultConfig(opts.APIKey)
		if opts.BaseURL != "" {
			cfg.BaseURL = opts.BaseURL
		}
		client = openai.NewClientWithConfig(cfg)
	}
	if opts.History <= 0 {
		opts.History = 20
	}

	return &ChatService{
		client:        client,
		store:         store,
		opts:          opts,
		conversations: conversations,
		logger:        logger,
	}, nil
}

// Chat một lượt thoại. conversationID rỗng = thoại mới không nhớ
// lịch sử cũ.
func (cs *ChatService) Chat(ctx context.Context, conversationID, message string) (string, error) {
	if cs.client == nil {
		return "", ErrChatNotConfigured
	}

	history, _ := cs.conversations.Get(conversationID)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: cs.systemPrompt(message),
	})
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := cs.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       cs.opts.Model,
		Messages:    messages,
		MaxTokens:   cs.opts.MaxTokens,
		Temperature: float32(cs.opts.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gọi chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion trả về rỗng")
	}
	reply := resp.Choices[0].Message.Content

	if conversationID != "" {
		history = append(history,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
		)
		if len(history) > cs.opts.History {
			history = history[len(history)-cs.opts.History:]
		}
		cs.conversations.Add(conversationID, history)
	}
	return reply, nil
}

// systemPrompt build prompt tiếng Việt kèm dữ liệu quán liên quan tới
// câu hỏi (match theo món trong menu và theo tên/địa chỉ).
func (cs *ChatService) systemPrompt(message string) string {
	var b strings.Builder
	b.WriteString("Bạn là chatbot ẩm thực Việt Nam chuyên tư vấn về đồ ăn, nhà hàng, và nguyên liệu.\n")
	b.WriteString("Chỉ trả lời về ẩm thực, nhà hàng, món ăn Việt Nam; chủ đề khác thì lịch sự từ chối.\n")
	b.WriteString("Luôn trả lời bằng tiếng Việt, ngắn gọn súc tích, trình bày dạng danh sách nếu có thể.\n")
	b.WriteString("Luôn ưu tiên dùng dữ liệu nhà hàng bên dưới; liệt kê tên, địa chỉ, rating, số điện thoại khi có.\n")
	b.WriteString("Nếu không có dữ liệu phù hợp, nói rõ hệ thống chưa có thông tin rồi mới tư vấn chung.\n")

	matched := cs.relevantRestaurants(message, 10)
	if len(matched) == 0 {
		return b.String()
	}

	b.WriteString("\nDữ liệu nhà hàng liên quan từ hệ thống:\n")
	snap := cs.store.Current()
	for _, r := range matched {
		fmt.Fprintf(&b, "- %s | %s", r.Name, r.Address)
		if r.Rating != nil {
			fmt.Fprintf(&b, " | ⭐ %.1f/5", *r.Rating)
		}
		if r.PhoneNumber != "" {
			fmt.Fprintf(&b, " | ☎ %s", r.PhoneNumber)
		}
		if r.OpenHours != "" {
			fmt.Fprintf(&b, " | 🕐 %s", r.OpenHours)
		}
		b.WriteString("\n")
		for _, item := range snap.Menu(r.ID.String()) {
			if dishMatches(item, message) {
				fmt.Fprintf(&b, "    · món: %s\n", item.DishName)
			}
		}
	}
	return b.String()
}

// relevantRestaurants lọc quán match câu hỏi: tên món trong menu,
// tên quán, địa chỉ hoặc tag, so trên text đã normalize.
func (cs *ChatService) relevantRestaurants(message string, limit int) []models.Restaurant {
	q := normalizer.Fold(message)
	if q == "" {
		return nil
	}
	snap := cs.store.Current()

	var matched []models.Restaurant
	for _, r := range snap.Restaurants {
		if len(matched) >= limit {
			break
		}
		ok := strings.Contains(q, normalizer.Fold(r.Name)) ||
			strings.Contains(normalizer.Fold(r.Address), q)
		if !ok {
			for _, tag := range r.Tags {
				if strings.Contains(q, normalizer.Fold(tag)) {
					ok = true
					break
				}
			}
		}
		if !ok {
			for _, item := range snap.Menu(r.ID.String()) {
				if dishMatches(item, message) {
					ok = true
					break
				}
			}
		}
		if ok {
			matched = append(matched, r)
		}
	}
	return matched
}

func dishMatches(item models.MenuItem, message string) bool {
	q := normalizer.Fold(message)
	if name := normalizer.Fold(item.DishName); name != "" && strings.Contains(q, name) {
		return true
	}
	for _, tag := range item.DishTags {
		if t := normalizer.Fold(tag); t != "" && strings.Contains(q, t) {
			return true
		}
	}
	return false
}
