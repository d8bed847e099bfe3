package domain

import "time"

// Issue is one entry of the business-issue feed.
type Issue struct {
	Title   string
	Content string
	Date    string
	Image   string

	// At is the parsed Date; zero when Date is unparseable.
	At time.Time
}

// IssueFromRecord reads an issue from a feed record.
func IssueFromRecord(r Record) Issue {
	at, _ := ParseDate(r.Text("date"))
	return Issue{
		Title:   r.Text("title"),
		Content: r.Text("content"),
		Date:    r.Text("date"),
		Image:   r.Text("image"),
		At:      at,
	}
}

// InMonthOf reports whether the issue is dated in the same year and month as t.
func (i Issue) InMonthOf(t time.Time) bool {
	if i.At.IsZero() {
		return false
	}
	return i.At.Year() == t.Year() && i.At.Month() == t.Month()
}

// IssueFeed is the issue page content.
type IssueFeed struct {
	// All issues, newest first.
	All []Issue

	// Featured are the issues of the current month, newest first.
	Featured []Issue
}

// Empty reports whether the feed has no issues at all.
func (f IssueFeed) Empty() bool {
	return len(f.All) == 0
}

// NewIssueFeed builds a feed from date-sorted records relative to now.
func NewIssueFeed(records []Record, now time.Time) IssueFeed {
	feed := IssueFeed{All: make([]Issue, 0, len(records))}
	for _, r := range records {
		issue := IssueFromRecord(r)
		feed.All = append(feed.All, issue)
		if issue.InMonthOf(now) {
			feed.Featured = append(feed.Featured, issue)
		}
	}
	return feed
}
