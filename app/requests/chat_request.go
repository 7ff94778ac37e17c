package requests

// ChatRequest body của POST /api/chatbot/chat.
// ConversationID rỗng = mở hội thoại mới.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// PlanRouteRequest body của POST /api/chatbot/plan-route.
// SelectedIDs rỗng = lấy toàn bộ danh sách yêu thích.
type PlanRouteRequest struct {
	UserLat     *float64 `json:"user_lat" binding:"required"`
	UserLon     *float64 `json:"user_lon" binding:"required"`
	SelectedIDs []string `json:"selected_ids"`
}
