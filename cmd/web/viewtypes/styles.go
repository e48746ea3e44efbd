package viewtypes

import "thirdcoast.systems/cardfeed/pkg/feed"

// ============================================================================
// SHARED CSS CLASS CONSTANTS
// Class strings from static/assets/feed.css used by the feed templates.
// ============================================================================

var FeedClass = "feed"

var FeedTitle = "feed-title"

// CardClass wraps a content slot.
var CardClass = "card"

var CardThumb = "card-thumb"

var CardDuration = "card-duration"

var CardBody = "card-body"

var CardTitle = "card-title"

var CardDescription = "card-description"

var CardStats = "card-stats"

var ShareButton = "card-share"

// AdSlotClass is the placeholder container for an ad slot.
var AdSlotClass = "ad-slot"

var LoadMoreClass = "load-more"

// SlotClass returns the container class for a slot's view type.
func SlotClass(kind feed.SlotKind) string {
	if kind == feed.SlotAd {
		return AdSlotClass
	}
	return CardClass
}
