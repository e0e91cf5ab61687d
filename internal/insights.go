package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultMaxResults caps an insight query when the caller passes no limit
const DefaultMaxResults = 10

// graphTimeLayout is the zone-less timestamp format calendar responses use
const graphTimeLayout = "2006-01-02T15:04:05.9999999"

// Aggregator queries the API for meeting, email and document summaries and
// normalizes them into InsightRecord values. When a live call fails for any
// reason the aggregator silently substitutes fixture data and logs a warning.
type Aggregator struct {
	client *Client
	logger *Logger
	retry  RetryOptions
	now    func() time.Time
}

// NewAggregator creates an insight aggregator
func NewAggregator(client *Client, logger *Logger, retry RetryOptions) *Aggregator {
	return &Aggregator{
		client: client,
		logger: logger,
		retry:  retry,
		now:    time.Now,
	}
}

// GetInsights returns normalized records for the requested category and
// window, capped at maxResults. Unknown category or range values are input
// errors. Category-internal ordering is preserved as returned by the source;
// "all" applies no cross-category sort.
func (a *Aggregator) GetInsights(ctx context.Context, category InsightCategory, timeRange TimeRange, maxResults int) ([]InsightRecord, error) {
	if _, err := ParseTimeRange(string(timeRange)); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	now := a.now()
	start, end := timeRange.Window(now)

	switch category {
	case CategoryMeetings:
		return a.meetings(ctx, start, end, maxResults), nil
	case CategoryEmails:
		return a.emails(ctx, start, end, maxResults), nil
	case CategoryDocuments:
		return a.documents(ctx, start, end, maxResults), nil
	case CategoryAll:
		// Even split, integer division: the remainder is dropped
		per := maxResults / 3
		records := a.meetings(ctx, start, end, per)
		records = append(records, a.emails(ctx, start, end, per)...)
		records = append(records, a.documents(ctx, start, end, per)...)
		return records, nil
	case CategoryRecent:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		last24 := now.Add(-24 * time.Hour)
		records := a.meetings(ctx, dayStart, now, 2)
		records = append(records, a.emails(ctx, last24, now, 2)...)
		records = append(records, a.documents(ctx, last24, now, 1)...)
		if len(records) > maxResults {
			records = records[:maxResults]
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unknown category: %s (supported: meetings, emails, documents, all, recent)", category)
	}
}

type calendarEvent struct {
	Subject     string `json:"subject"`
	BodyPreview string `json:"bodyPreview"`
	Start       struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"start"`
	Organizer struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"organizer"`
	IsOnlineMeeting bool `json:"isOnlineMeeting"`
}

type mailMessage struct {
	Subject          string `json:"subject"`
	BodyPreview      string `json:"bodyPreview"`
	ReceivedDateTime string `json:"receivedDateTime"`
	HasAttachments   bool   `json:"hasAttachments"`
	From             struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
}

type driveItem struct {
	Name                 string `json:"name"`
	WebURL               string `json:"webUrl"`
	LastModifiedDateTime string `json:"lastModifiedDateTime"`
	LastModifiedBy       struct {
		User struct {
			DisplayName string `json:"displayName"`
		} `json:"user"`
	} `json:"lastModifiedBy"`
}

type listResponse[T any] struct {
	Value []T `json:"value"`
}

func (a *Aggregator) meetings(ctx context.Context, start, end time.Time, max int) []InsightRecord {
	if max <= 0 {
		return nil
	}
	endpoint := fmt.Sprintf("/me/calendarView?startDateTime=%s&endDateTime=%s&$select=subject,bodyPreview,start,organizer,isOnlineMeeting&$orderby=start/dateTime&$top=%d",
		url.QueryEscape(start.UTC().Format(time.RFC3339)), url.QueryEscape(end.UTC().Format(time.RFC3339)), max)

	events, err := fetchList[calendarEvent](ctx, a, "get-meetings", endpoint)
	if err != nil {
		a.logger.Warnf("insights", "meetings query failed, using fixture data: %v", err)
		return trimRecords(fixtureMeetings(a.now()), max)
	}

	records := make([]InsightRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, InsightRecord{
			Type:        InsightMeeting,
			Title:       ev.Subject,
			Description: ev.BodyPreview,
			Timestamp:   parseGraphTime(ev.Start.DateTime),
			SourceData: map[string]interface{}{
				"organizer":       ev.Organizer.EmailAddress.Name,
				"isOnlineMeeting": ev.IsOnlineMeeting,
			},
		})
	}
	return trimRecords(records, max)
}

func (a *Aggregator) emails(ctx context.Context, start, end time.Time, max int) []InsightRecord {
	if max <= 0 {
		return nil
	}
	filter := fmt.Sprintf("receivedDateTime ge %s and receivedDateTime le %s",
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf("/me/messages?$filter=%s&$select=subject,bodyPreview,receivedDateTime,from,hasAttachments&$orderby=receivedDateTime desc&$top=%d",
		url.QueryEscape(filter), max)

	messages, err := fetchList[mailMessage](ctx, a, "get-emails", endpoint)
	if err != nil {
		a.logger.Warnf("insights", "emails query failed, using fixture data: %v", err)
		return trimRecords(fixtureEmails(a.now()), max)
	}

	records := make([]InsightRecord, 0, len(messages))
	for _, msg := range messages {
		records = append(records, InsightRecord{
			Type:        InsightEmail,
			Title:       msg.Subject,
			Description: msg.BodyPreview,
			Timestamp:   parseGraphTime(msg.ReceivedDateTime),
			SourceData: map[string]interface{}{
				"from":           msg.From.EmailAddress.Address,
				"hasAttachments": msg.HasAttachments,
			},
		})
	}
	return trimRecords(records, max)
}

func (a *Aggregator) documents(ctx context.Context, start, end time.Time, max int) []InsightRecord {
	if max <= 0 {
		return nil
	}
	endpoint := fmt.Sprintf("/me/drive/recent?$top=%d", max)

	items, err := fetchList[driveItem](ctx, a, "get-documents", endpoint)
	if err != nil {
		a.logger.Warnf("insights", "documents query failed, using fixture data: %v", err)
		return trimRecords(fixtureDocuments(a.now()), max)
	}

	records := make([]InsightRecord, 0, len(items))
	for _, item := range items {
		modified := parseGraphTime(item.LastModifiedDateTime)
		// The recent-files endpoint has no date filter; apply the window here
		if modified.Before(start) || modified.After(end) {
			continue
		}
		records = append(records, InsightRecord{
			Type:        InsightDocument,
			Title:       item.Name,
			Description: fmt.Sprintf("Last modified by %s", item.LastModifiedBy.User.DisplayName),
			Timestamp:   modified,
			SourceData: map[string]interface{}{
				"webUrl": item.WebURL,
			},
		})
	}
	return trimRecords(records, max)
}

func fetchList[T any](ctx context.Context, a *Aggregator, operation, endpoint string) ([]T, error) {
	opts := a.retry
	opts.Context = map[string]interface{}{"endpoint": endpoint}
	resp, err := InvokeWithRetry(ctx, a.logger, operation, opts, func(ctx context.Context) (listResponse[T], error) {
		var out listResponse[T]
		err := a.client.Request(ctx, http.MethodGet, endpoint, nil, nil, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func trimRecords(records []InsightRecord, max int) []InsightRecord {
	if len(records) > max {
		return records[:max]
	}
	return records
}

// parseGraphTime handles both RFC 3339 timestamps and the zone-less format
// used inside calendar event bodies
func parseGraphTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(graphTimeLayout, s); err == nil {
		return t
	}
	return time.Time{}
}
