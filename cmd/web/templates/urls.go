// Package templates renders the feed page and its slot fragments.
package templates

import (
	"net/url"
	"strconv"

	"thirdcoast.systems/cardfeed/pkg/feed"
)

// SlotsURL is the endpoint that streams the next binding pass.
func SlotsURL(playlistID string) string {
	return "/api/playlists/" + url.PathEscape(playlistID) + "/slots"
}

// EventURL is the endpoint a card posts its Play or Share event to.
func EventURL(playlistID string, ev feed.Event) string {
	q := url.Values{}
	q.Set("video", ev.VideoID)
	q.Set("action", string(ev.Action))
	return "/api/playlists/" + url.PathEscape(playlistID) + "/events?" + q.Encode()
}

// ThumbnailURL routes a thumbnail through the prefetch cache.
func ThumbnailURL(src, placeholder string) string {
	if src == "" {
		return placeholder
	}
	q := url.Values{}
	q.Set("src", src)
	return "/api/thumbnails?" + q.Encode()
}

// SlotID is the DOM id of a slot container.
func SlotID(position int) string {
	return "slot-" + strconv.Itoa(position)
}
