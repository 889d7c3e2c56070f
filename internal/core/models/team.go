package models

import "errors"

// Team is a member program of the conference: identity, home location, the
// venues it may host at, and optional membership tags such as
// "no-play-on-sunday" or "travel-zone:west".
type Team struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	VenueIDs       []string `json:"venue_ids,omitempty"`
	PrimaryVenueID string   `json:"primary_venue_id,omitempty"`

	Tags []string `json:"tags,omitempty"`
}

// Validate checks invariants a Team must hold before a Schedule can
// reference it.
func (t *Team) Validate() error {
	if t.ID == "" {
		return errors.New("team id cannot be empty")
	}
	if t.Name == "" {
		return errors.New("team name cannot be empty")
	}
	if t.Latitude < -90 || t.Latitude > 90 {
		return errors.New("team latitude must be between -90 and 90")
	}
	if t.Longitude < -180 || t.Longitude > 180 {
		return errors.New("team longitude must be between -180 and 180")
	}
	if t.PrimaryVenueID != "" && !t.HasVenue(t.PrimaryVenueID) {
		return errors.New("team primary venue must be one of its venues")
	}
	return nil
}

// HasVenue reports whether venueID belongs to this team.
func (t *Team) HasVenue(venueID string) bool {
	for _, v := range t.VenueIDs {
		if v == venueID {
			return true
		}
	}
	return false
}

// HasTag reports whether the team carries the given membership tag.
func (t *Team) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// NoPlayOnSunday reports the religious-day-restriction membership tag.
func (t *Team) NoPlayOnSunday() bool {
	return t.HasTag("no-play-on-sunday")
}

const travelZoneTagPrefix = "travel-zone:"

// TravelZone returns the team's travel-zone tag value, or "" if untagged.
func (t *Team) TravelZone() string {
	for _, tg := range t.Tags {
		if len(tg) > len(travelZoneTagPrefix) && tg[:len(travelZoneTagPrefix)] == travelZoneTagPrefix {
			return tg[len(travelZoneTagPrefix):]
		}
	}
	return ""
}

// Clone returns an isolated value copy. Teams are normally shared read-only
// references across schedules; this exists for callers that need their own.
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	cp := *t
	cp.VenueIDs = append([]string(nil), t.VenueIDs...)
	cp.Tags = append([]string(nil), t.Tags...)
	return &cp
}
