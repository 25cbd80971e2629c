// api/handlers/admin_handlers.go
package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"cristalclean/api/config"
	"cristalclean/api/models"
	"cristalclean/api/store"
	"cristalclean/api/utils"
)

const (
	maxLoginFailures = 5
	loginWindow      = 15 * time.Minute
)

type AdminHandlers struct {
	Cfg      *config.Config
	Settings *store.SettingsStore
	Tokens   *utils.TokenStore

	mu       sync.Mutex
	failures map[string][]time.Time // ip -> recent failed attempts
}

func NewAdminHandlers(cfg *config.Config, settings *store.SettingsStore, tokens *utils.TokenStore) *AdminHandlers {
	return &AdminHandlers{
		Cfg:      cfg,
		Settings: settings,
		Tokens:   tokens,
		failures: make(map[string][]time.Time),
	}
}

// Login checks the admin password against the configured bcrypt hash
// and issues a revocable JWT. Failures are rate limited per IP.
func (h *AdminHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ip := utils.ClientIP(c.Request)
	if h.tooManyFailures(ip) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, try again later"})
		return
	}

	if h.Cfg.AdminPasswordHash == "" {
		log.Println("ERROR: ADMIN_PASSWORD_HASH is not configured, admin login disabled")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Admin login failed from %s", ip)
		h.recordFailure(ip)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, tokenID, err := utils.GenerateAdminJWT(h.Cfg.JWTSecret)
	if err != nil {
		log.Printf("ERROR: Failed to generate admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}
	h.Tokens.Put(tokenID, time.Now().Add(utils.AdminTokenTTL()))
	h.clearFailures(ip)

	c.SetCookie(
		"admin_token",
		tokenString,
		int(utils.AdminTokenTTL()/time.Second),
		"/",
		"",
		false,
		true,
	)

	log.Printf("Admin logged in from %s", ip)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": tokenString})
}

func (h *AdminHandlers) Logout(c *gin.Context) {
	if tokenID, ok := c.Get("token_id"); ok {
		h.Tokens.Revoke(tokenID.(string))
	}
	c.SetCookie("admin_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetSettings is public: the frontend reads theme and contact info.
func (h *AdminHandlers) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Get())
}

func (h *AdminHandlers) UpdateSettings(c *gin.Context) {
	var s models.SiteSettings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	updated, err := h.Settings.Update(s)
	if err != nil {
		log.Printf("ERROR: Failed to persist settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AdminHandlers) tooManyFailures(ip string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	cutoff := time.Now().Add(-loginWindow)
	recent := h.failures[ip][:0]
	for _, t := range h.failures[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	h.failures[ip] = recent
	return len(recent) >= maxLoginFailures
}

func (h *AdminHandlers) recordFailure(ip string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures[ip] = append(h.failures[ip], time.Now())
}

func (h *AdminHandlers) clearFailures(ip string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.failures, ip)
}
