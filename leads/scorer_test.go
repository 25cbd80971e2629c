package leads

import (
	"testing"
	"time"

	"cristalclean/api/models"
)

func TestScoreAppointmentLead(t *testing.T) {
	// name(25) + intent randevu(30) + 12 messages(15) = 70
	l := models.Lead{
		UserName:     "Ayşe",
		Intent:       "randevu",
		MessageCount: 12,
	}
	if got := Score(l); got != 70 {
		t.Fatalf("Score() = %d, want 70", got)
	}
}

func TestScoreTable(t *testing.T) {
	tests := []struct {
		name string
		lead models.Lead
		want int
	}{
		{"empty", models.Lead{}, 0},
		{"phone only", models.Lead{UserPhone: "0761234567"}, 35},
		{"extracted phone only", models.Lead{ExtractedPhone: "0761234567"}, 30},
		{"email only", models.Lead{Email: "a@b.ch"}, 20},
		{"unrecognized intent", models.Lead{Intent: "smalltalk"}, 0},
		{"devis", models.Lead{Intent: "devis"}, 25},
		{"urgence", models.Lead{Intent: "urgence"}, 25},
		{"fiyat", models.Lead{Intent: "fiyat"}, 20},
		{"merci", models.Lead{Intent: "merci"}, 5},
		{"two messages", models.Lead{MessageCount: 2}, 5},
		{"nine messages", models.Lead{MessageCount: 9}, 10},
		{"one message", models.Lead{MessageCount: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.lead); got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreClamped(t *testing.T) {
	l := models.Lead{
		UserName:       "Jean",
		UserPhone:      "0761234567",
		ExtractedPhone: "0761234567",
		Email:          "jean@example.ch",
		Intent:         "appointment",
		MessageCount:   20,
	}
	if got := Score(l); got != 100 {
		t.Fatalf("Score() = %d, want clamp at 100", got)
	}
}

func TestBuildLeadsDropsSignallessSessions(t *testing.T) {
	sessions := []models.ChatSession{
		{
			ID:        "s1",
			VisitorID: "v1",
			Intent:    "info request",
			Messages:  []models.ChatMessage{userMsg("bonjour, vous ouvrez quand?")},
			StartTime: time.Now(),
		},
	}
	if got := BuildLeads(sessions); len(got) != 0 {
		t.Fatalf("expected no leads from signalless session, got %d", len(got))
	}
}

func TestBuildLeadsMergesToBothSource(t *testing.T) {
	base := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	sessions := []models.ChatSession{
		{
			ID:           "s1",
			VisitorID:    "v1",
			UserPhone:    "0761234567",
			Intent:       "devis",
			MessageCount: 3,
			Messages:     []models.ChatMessage{userMsg("j'aimerais un devis")},
			StartTime:    base,
		},
		{
			ID:           "s2",
			VisitorID:    "v1",
			Intent:       "randevu",
			MessageCount: 4,
			Messages:     []models.ChatMessage{userMsg("mon email: marie@example.ch")},
			StartTime:    base.Add(time.Hour),
		},
	}

	got := BuildLeads(sessions)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged lead, got %d", len(got))
	}
	lead := got[0]
	if lead.Source != "both" {
		t.Fatalf("expected source both, got %q", lead.Source)
	}
	if lead.UserPhone != "0761234567" || lead.Email != "marie@example.ch" {
		t.Fatalf("signals not merged: %+v", lead)
	}
	if lead.MessageCount != 7 {
		t.Fatalf("message counts not summed: %d", lead.MessageCount)
	}
	if lead.Intent != "randevu" {
		t.Fatalf("intent should follow latest session, got %q", lead.Intent)
	}
	if !lead.FirstContact.Equal(base) || !lead.LastContact.Equal(base.Add(time.Hour)) {
		t.Fatalf("contact window wrong: %v - %v", lead.FirstContact, lead.LastContact)
	}
	if len(lead.Messages) != 2 {
		t.Fatalf("messages not concatenated: %d", len(lead.Messages))
	}
}

func TestBuildLeadsFirstWriteWinsOnFields(t *testing.T) {
	base := time.Now()
	sessions := []models.ChatSession{
		{ID: "s1", VisitorID: "v1", UserName: "Marie", StartTime: base},
		{ID: "s2", VisitorID: "v1", UserName: "Not Marie", StartTime: base.Add(time.Minute)},
	}

	got := BuildLeads(sessions)
	if len(got) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(got))
	}
	if got[0].UserName != "Marie" {
		t.Fatalf("first-write-wins violated: %q", got[0].UserName)
	}
}

func TestBuildLeadsSortedByScoreStable(t *testing.T) {
	base := time.Now()
	sessions := []models.ChatSession{
		// v1: name only -> 25
		{ID: "s1", VisitorID: "v1", UserName: "A", StartTime: base},
		// v2: phone -> 35
		{ID: "s2", VisitorID: "v2", UserPhone: "0761234567", StartTime: base},
		// v3: name only -> 25, encountered after v1
		{ID: "s3", VisitorID: "v3", UserName: "C", StartTime: base},
	}

	got := BuildLeads(sessions)
	if len(got) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(got))
	}
	if got[0].VisitorID != "v2" {
		t.Fatalf("highest score not first: %+v", got[0])
	}
	if got[1].VisitorID != "v1" || got[2].VisitorID != "v3" {
		t.Fatalf("tie order not stable: %s, %s", got[1].VisitorID, got[2].VisitorID)
	}
}

func TestSummarize(t *testing.T) {
	list := []models.Lead{
		{UserName: "A", UserPhone: "0761234567", Score: 85},
		{Email: "a@b.ch", Score: 20},
		{ExtractedPhone: "0795550000", Score: 30},
	}
	s := Summarize(list)
	if s.Total != 3 || s.WithPhone != 2 || s.WithName != 1 || s.WithEmail != 1 || s.HighPotential != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
