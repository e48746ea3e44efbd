package feed

import "context"

// Card is the bound content of a video slot.
type Card struct {
	Position     int
	VideoID      string
	Title        string
	Description  string
	ThumbnailURL string
	Placeholder  string
	Duration     string
	Views        string
	Likes        string
	Dislikes     string
	WatchURL     string
	Play         Event
	Share        Event
}

// Slot is one bound display position. Card is nil for ad slots.
type Slot struct {
	Position int
	Kind     SlotKind
	Card     *Card
}

type lastItem struct {
	position int
	token    string
}

// Pass is a single binding pass over a range of slots. It is not safe for
// concurrent use; separate passes on one Adapter are.
type Pass struct {
	adapter *Adapter
	pending []lastItem
	ended   bool
}

// Bind binds one slot. ok is false when a content slot has no video behind it.
func (p *Pass) Bind(ctx context.Context, position int) (Slot, bool) {
	a := p.adapter
	kind := a.placement.Kind(position)
	if kind == SlotAd {
		return Slot{Position: position, Kind: SlotAd}, true
	}

	size := a.videos.Len()
	if size == 0 {
		return Slot{Position: position, Kind: SlotContent}, false
	}
	idx := a.ContentIndex(position)
	if idx < 0 || idx >= size {
		return Slot{Position: position, Kind: SlotContent}, false
	}
	v := a.videos.At(idx)
	if v == nil {
		return Slot{Position: position, Kind: SlotContent}, false
	}

	card := a.card(position, v)
	if a.images != nil && card.ThumbnailURL != "" {
		a.images.Load(card.ThumbnailURL, card.Placeholder)
	}

	if a.listener != nil {
		token := a.videos.NextPageToken()
		if token != "" && position == size-1 && !a.alreadyNotified(token) {
			p.pending = append(p.pending, lastItem{position: position, token: token})
		}
	}

	return Slot{Position: position, Kind: SlotContent, Card: card}, true
}

// End runs the notifications queued during the pass, in bind order. Each
// continuation token is delivered at most once per Adapter.
func (p *Pass) End(ctx context.Context) {
	if p.ended {
		return
	}
	p.ended = true
	for _, n := range p.pending {
		if !p.adapter.claim(n.token) {
			continue
		}
		p.adapter.listener.OnLastItem(ctx, n.position, n.token)
	}
	p.pending = nil
}
