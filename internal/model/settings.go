package model

// Settings holds an organiser's display preferences from the `settings`
// table.  One row per organiser, upserted by the owner.  Attendee-facing
// pages fall back to empty strings when no row exists yet.
type Settings struct {
    OrganiserID      uint64 // settings.organiser_id (unique)
    SiteTitle        string // settings.site_title
    OrganiserName    string // settings.organiser_name
    OrganiserCompany string // settings.organiser_company
}
