package model

import "time"

// Event statuses.  An event starts life as a draft and becomes published
// exactly once; there is no way back to draft.
const (
    EventStatusDraft     = "draft"
    EventStatusPublished = "published"
)

// Event represents a row in the `events` table.  Events belong to an
// organiser and carry two ticket tiers (normal and concession) stored in
// the `tickets` table.  Only published events are visible to attendees.
//
// Fields:
//  ID          – primary key identifier.
//  OrganiserID – owning organiser (events.organiser_id).
//  Title       – event title shown to attendees.
//  Description – free-text description.
//  Date        – when the event takes place.
//  Status      – draft or published.
//  CreatedAt   – creation timestamp.
//  PublishedAt – set the first time the event is published (null for drafts).
type Event struct {
    ID          uint64     // events.id
    OrganiserID uint64     // events.organiser_id
    Title       string     // events.title
    Description string     // events.description
    Date        time.Time  // events.date
    Status      string     // events.status
    CreatedAt   time.Time  // events.created_at
    PublishedAt *time.Time // events.published_at (nullable)
}

// Published reports whether the event is visible and bookable by attendees.
func (e *Event) Published() bool { return e.Status == EventStatusPublished }
