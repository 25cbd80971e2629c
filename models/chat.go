package models

import "time"

type ChatMessage struct {
	Sender    string    `json:"sender"` // "user" or "bot"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is a full chatbot transcript as reported by the widget.
type ChatSession struct {
	ID           string        `json:"id"`
	VisitorID    string        `json:"visitorId"`
	UserName     string        `json:"userName,omitempty"`
	UserPhone    string        `json:"userPhone,omitempty"`
	MessageCount int           `json:"messageCount"`
	Intent       string        `json:"intent"`
	Messages     []ChatMessage `json:"messages"`
	StartTime    time.Time     `json:"startTime"`
	Location     string        `json:"location,omitempty"`
	Device       string        `json:"device,omitempty"`
	Browser      string        `json:"browser,omitempty"`
}

// Lead is a derived record, recomputed on every leads request. All chat
// sessions of one visitor merge into a single scored lead.
type Lead struct {
	VisitorID      string        `json:"visitorId"`
	UserName       string        `json:"userName,omitempty"`
	UserPhone      string        `json:"userPhone,omitempty"`
	ExtractedPhone string        `json:"extractedPhone,omitempty"`
	Email          string        `json:"email,omitempty"`
	Intent         string        `json:"intent"`
	MessageCount   int           `json:"messageCount"`
	Messages       []ChatMessage `json:"messages"`
	FirstContact   time.Time     `json:"firstContact"`
	LastContact    time.Time     `json:"lastContact"`
	Source         string        `json:"source"` // chat, form, both
	Score          int           `json:"score"`
}

type LeadSummary struct {
	Total         int `json:"total"`
	WithPhone     int `json:"withPhone"`
	WithName      int `json:"withName"`
	WithEmail     int `json:"withEmail"`
	HighPotential int `json:"highPotential"` // score >= 80
}
