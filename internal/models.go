package internal

import (
	"fmt"
	"time"
)

// InsightType classifies a normalized insight record
type InsightType string

const (
	InsightMeeting  InsightType = "Meeting"
	InsightEmail    InsightType = "Email"
	InsightDocument InsightType = "Document"
)

// InsightRecord is a normalized summary derived from one data category.
// Value object, produced fresh per query.
type InsightRecord struct {
	Type        InsightType            `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Timestamp   time.Time              `json:"timestamp"`
	SourceData  map[string]interface{} `json:"source_data,omitempty"`
}

// InsightCategory selects which categories an insight query covers
type InsightCategory string

const (
	CategoryMeetings  InsightCategory = "meetings"
	CategoryEmails    InsightCategory = "emails"
	CategoryDocuments InsightCategory = "documents"
	CategoryAll       InsightCategory = "all"
	CategoryRecent    InsightCategory = "recent"
)

// ParseInsightCategory validates a category string
func ParseInsightCategory(s string) (InsightCategory, error) {
	switch InsightCategory(s) {
	case CategoryMeetings, CategoryEmails, CategoryDocuments, CategoryAll, CategoryRecent:
		return InsightCategory(s), nil
	default:
		return "", fmt.Errorf("unknown category: %s (supported: meetings, emails, documents, all, recent)", s)
	}
}

// TimeRange selects the query window relative to now
type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
)

// ParseTimeRange validates a time range string
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeToday, RangeWeek, RangeMonth:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("unknown time range: %s (supported: today, week, month)", s)
	}
}

// Window computes the [start, end] interval for the range relative to now
func (r TimeRange) Window(now time.Time) (time.Time, time.Time) {
	switch r {
	case RangeToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, now
	case RangeWeek:
		return now.AddDate(0, 0, -7), now
	case RangeMonth:
		return now.AddDate(0, -1, 0), now
	default:
		return now, now
	}
}

// Identity describes the authenticated principal
type Identity struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail,omitempty"`
}
