package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/middlewares"
	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/app/requests"
	"github.com/KhoaTranFitus/backend-food-app/app/responses"
	"github.com/KhoaTranFitus/backend-food-app/app/services"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
	"github.com/KhoaTranFitus/backend-food-app/internal/planner"
)

// ChatbotController chat tư vấn ẩm thực + lên lộ trình food tour
type ChatbotController struct {
	chat      *services.ChatService
	favorites *services.FavoriteService
	store     *catalog.Store
	logger    *zap.Logger
}

// NewChatbotController tạo mới ChatbotController
func NewChatbotController(chat *services.ChatService, favorites *services.FavoriteService, store *catalog.Store, logger *zap.Logger) *ChatbotController {
	return &ChatbotController{chat: chat, favorites: favorites, store: store, logger: logger}
}

// Chat POST /api/chatbot/chat
func (cc *ChatbotController) Chat(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	reply, err := cc.chat.Chat(c.Request.Context(), conversationID, req.Message)
	if err == services.ErrChatNotConfigured {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "CHAT_NOT_CONFIGURED",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		cc.logger.Error("Lỗi chat completion", zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   "CHAT_ERROR",
			Message: "Lỗi gọi chatbot",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reply":           reply,
		"conversation_id": conversationID,
	})
}

// PlanRoute POST /api/chatbot/plan-route (yêu cầu đăng nhập).
// Không gửi selected_ids thì lấy toàn bộ favorites của user.
func (cc *ChatbotController) PlanRoute(c *gin.Context) {
	var req requests.PlanRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	var restaurants []models.Restaurant
	if len(req.SelectedIDs) > 0 {
		snap := cc.store.Current()
		for _, id := range req.SelectedIDs {
			if r, ok := snap.ByID(id); ok {
				restaurants = append(restaurants, *r)
			}
		}
	} else {
		userID := c.GetString(middlewares.ContextUserID)
		favorites, err := cc.favorites.List(c.Request.Context(), userID)
		if err != nil {
			cc.logger.Error("Lỗi đọc favorites cho lộ trình", zap.Error(err))
			c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
				Error:   "FAVORITE_ERROR",
				Message: "Lỗi đọc danh sách yêu thích",
			})
			return
		}
		restaurants = favorites
	}

	if len(restaurants) == 0 {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "EMPTY_ROUTE",
			Message: "Không có quán nào để lên lộ trình",
		})
		return
	}

	plan := planner.PlanRoute(*req.UserLat, *req.UserLon, restaurants)

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"route":             plan.Stops,
		"total_distance":    plan.TotalDistanceKm,
		"estimated_minutes": planner.EstimatedMinutes(plan),
	})
}
