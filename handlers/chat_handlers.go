// api/handlers/chat_handlers.go
package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cristalclean/api/models"
	"cristalclean/api/store"
)

type ChatHandlers struct {
	ChatbotURL string
	Chats      *store.ChatStore
	client     *http.Client
}

func NewChatHandlers(chatbotURL string, chats *store.ChatStore) *ChatHandlers {
	return &ChatHandlers{
		ChatbotURL: chatbotURL,
		Chats:      chats,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Proxy forwards the chat request body to the third-party chatbot
// service untouched and relays the answer.
func (h *ChatHandlers) Proxy(c *gin.Context) {
	if h.ChatbotURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chatbot is not configured"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.ChatbotURL, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build chatbot request"})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("Error reaching chatbot service: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chatbot service unavailable"})
		return
	}
	defer resp.Body.Close()

	c.Header("Content-Type", resp.Header.Get("Content-Type"))
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Printf("Error relaying chatbot response: %v", err)
	}
}

// SaveSession upserts the transcript the chat widget reports at the end
// of a conversation. It feeds the lead report.
func (h *ChatHandlers) SaveSession(c *gin.Context) {
	var s models.ChatSession
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if s.VisitorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visitorId is required"})
		return
	}
	saved := h.Chats.Upsert(s)
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": saved.ID})
}
