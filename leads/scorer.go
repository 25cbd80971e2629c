// api/leads/scorer.go
package leads

import (
	"sort"
	"strings"

	"cristalclean/api/models"
)

// Intent labels come from the chatbot in French or Turkish depending on
// the widget language; both map to the same weight.
var intentScores = map[string]int{
	"appointment":   30,
	"randevu":       30,
	"quote request": 25,
	"devis":         25,
	"urgent":        25,
	"urgence":       25,
	"price inquiry": 20,
	"fiyat":         20,
	"contact":       15,
	"info request":  10,
	"bilgi":         10,
	"complaint":     5,
	"sikayet":       5,
	"thanks":        5,
	"merci":         5,
}

// BuildLeads merges every visitor's chat sessions into one scored lead
// and returns them sorted by score, highest first. Sessions carrying no
// contact signal at all (no name, no phone, nothing extractable) are
// dropped before merging. The input order decides the grouping order,
// which in turn decides first-write-wins field merges and tie ordering.
func BuildLeads(sessions []models.ChatSession) []models.Lead {
	byVisitor := make(map[string]*models.Lead)
	var order []string

	for _, s := range sessions {
		extractedPhone := ExtractPhone(s.Messages)
		email := ExtractEmail(s.Messages)
		if s.UserName == "" && s.UserPhone == "" && extractedPhone == "" && email == "" {
			continue
		}

		lead, seen := byVisitor[s.VisitorID]
		if !seen {
			lead = &models.Lead{
				VisitorID:      s.VisitorID,
				UserName:       s.UserName,
				UserPhone:      s.UserPhone,
				ExtractedPhone: extractedPhone,
				Email:          email,
				Intent:         s.Intent,
				MessageCount:   s.MessageCount,
				Messages:       append([]models.ChatMessage(nil), s.Messages...),
				FirstContact:   s.StartTime,
				LastContact:    s.StartTime,
			}
			byVisitor[s.VisitorID] = lead
			order = append(order, s.VisitorID)
		} else {
			lead.MessageCount += s.MessageCount
			lead.Messages = append(lead.Messages, s.Messages...)
			if lead.UserName == "" {
				lead.UserName = s.UserName
			}
			if lead.UserPhone == "" {
				lead.UserPhone = s.UserPhone
			}
			if lead.ExtractedPhone == "" {
				lead.ExtractedPhone = extractedPhone
			}
			if lead.Email == "" {
				lead.Email = email
			}
			if s.StartTime.Before(lead.FirstContact) {
				lead.FirstContact = s.StartTime
			}
			// Intent follows whichever session started latest.
			if s.StartTime.After(lead.LastContact) {
				lead.LastContact = s.StartTime
				lead.Intent = s.Intent
			}
		}

		explicit := s.UserName != "" || s.UserPhone != ""
		extracted := extractedPhone != "" || email != ""
		lead.Source = mergeSource(lead.Source, explicit, extracted)
	}

	out := make([]models.Lead, 0, len(order))
	for _, id := range order {
		lead := byVisitor[id]
		lead.Score = Score(*lead)
		out = append(out, *lead)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func mergeSource(current string, explicit, extracted bool) string {
	switch current {
	case "":
		if explicit && extracted {
			return "both"
		}
		if explicit {
			return "form"
		}
		return "chat"
	case "form":
		if extracted {
			return "both"
		}
	case "chat":
		if explicit {
			return "both"
		}
	}
	return current
}

// Score is the additive lead score, capped at 100.
func Score(l models.Lead) int {
	score := 0
	if l.UserName != "" {
		score += 25
	}
	if l.UserPhone != "" {
		score += 35
	}
	if l.ExtractedPhone != "" {
		score += 30
	}
	if l.Email != "" {
		score += 20
	}
	score += intentScores[strings.ToLower(l.Intent)]
	switch {
	case l.MessageCount >= 10:
		score += 15
	case l.MessageCount >= 5:
		score += 10
	case l.MessageCount >= 2:
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Summarize counts the signals the dashboard shows next to the list.
func Summarize(leadsList []models.Lead) models.LeadSummary {
	s := models.LeadSummary{Total: len(leadsList)}
	for _, l := range leadsList {
		if l.UserPhone != "" || l.ExtractedPhone != "" {
			s.WithPhone++
		}
		if l.UserName != "" {
			s.WithName++
		}
		if l.Email != "" {
			s.WithEmail++
		}
		if l.Score >= 80 {
			s.HighPotential++
		}
	}
	return s
}
