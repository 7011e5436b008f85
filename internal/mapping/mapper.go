// Package mapping converts raw store documents into typed entities.
// Remote documents are schema-light: fields come and go across record
// revisions, so every rule reads an ordered list of fallback keys and
// substitutes a default instead of failing. Each mapper returns the
// names of fields that were defaulted so callers can log schema drift.
package mapping

import (
	"strconv"
	"strings"

	"applixy/internal/domain"
)

const (
	defaultOpportunityTitle = "Scholarship"
	defaultMentorName       = "Mentor"
	defaultResourceTitle    = "Resource"
	defaultSpecialty        = "Mentoring"
	defaultMentorRating     = 5.0
	defaultResourceIcon     = "link"

	// Shown when a record carries no award information at all.
	missingAward = "—"
)

// MapOpportunity builds an Opportunity from a raw document. It never
// fails; missing fields degrade to defaults and are reported in the
// second return value.
func MapOpportunity(doc domain.Document) (domain.Opportunity, []string) {
	var defaulted []string

	title, ok := stringField(doc.Fields, "name", "title")
	if !ok {
		title = defaultOpportunityTitle
		defaulted = append(defaulted, "title")
	}

	kindLabel, ok := stringField(doc.Fields, "type", "kind")
	if !ok {
		defaulted = append(defaulted, "kind")
	}

	rawDeadline, ok := stringField(doc.Fields, "application_deadline", "deadline")
	deadline, parsed := parseDeadline(rawDeadline)
	if !ok || !parsed {
		defaulted = append(defaulted, "deadline")
	}

	award, ok := awardField(doc.Fields, "award_amount", "amount")
	if !ok {
		defaulted = append(defaulted, "awardAmount")
	}

	tags, ok := listField(doc.Fields, "target_demographic", "tags")
	if !ok {
		defaulted = append(defaulted, "tags")
	}

	eligibility, ok := stringField(doc.Fields, "eligibility")
	if !ok {
		eligibility = strings.Join(tags, ", ")
		defaulted = append(defaulted, "eligibility")
	}

	details, _ := stringField(doc.Fields, "description", "details")
	link, _ := stringField(doc.Fields, "website", "link")

	return domain.Opportunity{
		ID:          doc.ID,
		Title:       title,
		Kind:        domain.ParseKind(kindLabel),
		Deadline:    deadline,
		AwardAmount: award,
		Eligibility: eligibility,
		Details:     details,
		Link:        link,
		Tags:        tags,
	}, defaulted
}

// MapMentor builds a Mentor from a raw document. Specialty accepts
// either a single string or a list; contact prefers email over phone.
func MapMentor(doc domain.Document) (domain.Mentor, []string) {
	var defaulted []string

	name, ok := stringField(doc.Fields, "name", "title")
	if !ok {
		name = defaultMentorName
		defaulted = append(defaulted, "name")
	}

	specialty := specialtyField(doc.Fields)
	if specialty == "" {
		specialty = defaultSpecialty
		defaulted = append(defaulted, "specialty")
	}

	bio, _ := stringField(doc.Fields, "description", "bio")
	experience, _ := stringField(doc.Fields, "experience")

	contact, ok := stringField(doc.Fields, "email", "phone", "phone_number")
	if !ok {
		defaulted = append(defaulted, "contactInfo")
	}

	rating, ok := numberField(doc.Fields, "rating")
	if !ok {
		rating = defaultMentorRating
		defaulted = append(defaulted, "rating")
	}

	sessions, ok := numberField(doc.Fields, "sessions_completed", "sessions")
	if !ok {
		defaulted = append(defaulted, "sessionsCompleted")
	}

	return domain.Mentor{
		ID:                doc.ID,
		Name:              name,
		Specialty:         specialty,
		Bio:               bio,
		Experience:        experience,
		ContactInfo:       contact,
		Rating:            rating,
		SessionsCompleted: int(sessions),
	}, defaulted
}

// MapResource builds a Resource from a raw document.
func MapResource(doc domain.Document) (domain.Resource, []string) {
	var defaulted []string

	title, ok := stringField(doc.Fields, "name", "title")
	if !ok {
		title = defaultResourceTitle
		defaulted = append(defaulted, "title")
	}

	description, _ := stringField(doc.Fields, "description")
	url, _ := stringField(doc.Fields, "link", "url")
	category, _ := stringField(doc.Fields, "category")

	icon, ok := stringField(doc.Fields, "icon")
	if !ok {
		icon = defaultResourceIcon
		defaulted = append(defaulted, "icon")
	}

	isExternal := true
	if v, found := doc.Fields["isExternal"]; found {
		if b, isBool := v.(bool); isBool {
			isExternal = b
		}
	} else {
		defaulted = append(defaulted, "isExternal")
	}

	return domain.Resource{
		ID:          doc.ID,
		Title:       title,
		Description: description,
		URL:         url,
		Category:    category,
		Icon:        icon,
		IsExternal:  isExternal,
	}, defaulted
}

// stringField returns the first non-empty string value among keys.
func stringField(fields map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// awardField renders an award amount for display: numeric values become
// "$<integer>", strings pass through unchanged.
func awardField(fields map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, found := fields[key]
		if !found {
			continue
		}
		if n, ok := asNumber(v); ok {
			return "$" + strconv.FormatInt(int64(n), 10), true
		}
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return missingAward, false
}

// listField returns the first string list among keys. Store drivers
// decode arrays as []any, so both shapes are accepted.
func listField(fields map[string]any, keys ...string) ([]string, bool) {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case []string:
			return v, true
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
			return items, true
		}
	}
	return []string{}, false
}

func numberField(fields map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := asNumber(fields[key]); ok {
			return n, true
		}
	}
	return 0, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func specialtyField(fields map[string]any) string {
	if items, ok := listField(fields, "specialty"); ok && len(items) > 0 {
		return strings.Join(items, ", ")
	}
	if s, ok := stringField(fields, "specialty"); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
