// Package videoid resolves YouTube video references to IDs, watch URLs and
// stable UUIDs.
package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const watchBaseURL = "https://www.youtube.com/watch?v="

var youtubeHosts = map[string]struct{}{
	"youtube.com":       {},
	"www.youtube.com":   {},
	"m.youtube.com":     {},
	"music.youtube.com": {},
	"youtu.be":          {},
}

var reVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// youtubeNamespace scopes VideoUUID. Same value as uuid.NewSHA1(uuid.NameSpaceDNS, "youtube.com").
var youtubeNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("youtube.com"))

// WatchURL is the public watch page for a video ID.
func WatchURL(videoID string) string {
	return watchBaseURL + url.QueryEscape(strings.TrimSpace(videoID))
}

// VideoUUID returns a deterministic UUIDv5 for a YouTube video ID.
func VideoUUID(videoID string) uuid.UUID {
	return uuid.NewSHA1(youtubeNamespace, []byte(strings.TrimSpace(videoID)))
}

// IsVideoID reports whether s looks like a bare 11 character video ID.
func IsVideoID(s string) bool {
	return reVideoID.MatchString(s)
}

// Parse accepts a bare video ID or any common YouTube URL form and returns the ID.
func Parse(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if IsVideoID(ref) {
		return ref, nil
	}
	return ExtractYouTubeVideoID(ref)
}

// ExtractYouTubeVideoID extracts the YouTube video ID from a URL.
// Returns empty string and error if not a valid YouTube URL or ID cannot be extracted.
func ExtractYouTubeVideoID(urlStr string) (string, error) {
	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return "", errors.New("empty url")
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}
	if u.Host == "" && !strings.Contains(urlStr, "://") {
		// Scheme-less input such as "youtu.be/abc".
		if u, err = url.Parse("https://" + urlStr); err != nil {
			return "", err
		}
	}

	host := normalizeHost(u.Host)
	if _, ok := youtubeHosts[host]; !ok {
		return "", errors.New("not a youtube url or video id not found")
	}

	// Handle youtu.be shortlinks
	if host == "youtu.be" {
		if id := firstPathSegment(u.Path); id != "" {
			return id, nil
		}
		return "", errors.New("not a youtube url or video id not found")
	}

	if q := u.Query().Get("v"); q != "" {
		return q, nil
	}
	for _, prefix := range []string{"/embed/", "/v/", "/shorts/", "/live/"} {
		if strings.HasPrefix(u.Path, prefix) {
			if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); id != "" {
				return id, nil
			}
		}
	}

	return "", errors.New("not a youtube url or video id not found")
}

func normalizeHost(hostport string) string {
	h := strings.TrimSpace(strings.ToLower(hostport))
	if h == "" {
		return ""
	}
	// url.URL.Host may include port.
	if strings.Contains(h, ":") {
		if parsed, err := url.Parse("//" + h); err == nil {
			if parsed.Hostname() != "" {
				h = parsed.Hostname()
			}
		}
	}
	return strings.TrimSuffix(h, ".")
}

func firstPathSegment(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
