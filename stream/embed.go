package stream

import (
	"strings"

	"globalbroadcast/models"
)

const embedBase = "https://www.youtube.com/embed/"

// EmbedURL turns a watch-page URL into an embeddable player URL. The video id
// is the text after the first "v=" up to the next "v=" or "&". ok is false when no id
// can be found, in which case the caller should not offer the stream.
func EmbedURL(watchURL string) (string, bool) {
	_, rest, found := strings.Cut(watchURL, "v=")
	if !found {
		return "", false
	}
	videoID, _, _ := strings.Cut(rest, "v=")
	videoID, _, _ = strings.Cut(videoID, "&")
	if videoID == "" {
		return "", false
	}
	return embedBase + videoID + "?autoplay=1&mute=1", true
}

// LiveStream returns the embed URL for a station's live-stream action. Only
// live stations with a usable stream reference get one.
func LiveStream(s models.Station) (string, bool) {
	if s.Status != models.StatusLive || s.StreamURL == "" {
		return "", false
	}
	return EmbedURL(s.StreamURL)
}
