package model

import "time"

// Session is the cached login of the single user of this client. The JSON
// layout matches the my-hours-cli.json file of earlier releases.
type Session struct {
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// ExpiresAt is a Unix timestamp in milliseconds on the client clock.
	ExpiresAt int64 `json:"expiresAt"`
}

// Expiry returns ExpiresAt as a time.Time.
func (s Session) Expiry() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}

// Expired reports whether the access token must be refreshed before use.
// A token expiring exactly at now counts as expired.
func (s Session) Expired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}
