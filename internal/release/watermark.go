package release

import "time"

// WatermarkLayout is an ISO-8601 local date-time without offset.
const WatermarkLayout = "2006-01-02T15:04:05"

// Watermark is the commit time of the latest release tag. Commits older than
// the watermark belong to earlier releases.
type Watermark struct {
	time time.Time
}

// NewWatermark returns a watermark at t, normalized to UTC.
func NewWatermark(t time.Time) *Watermark {
	return &Watermark{time: t.UTC()}
}

// Time returns the watermark instant in UTC.
func (w *Watermark) Time() time.Time {
	return w.time
}

// String formats the watermark for use as a "since" query value.
func (w *Watermark) String() string {
	if w == nil {
		return ""
	}
	return w.time.Format(WatermarkLayout)
}

// ResolveWatermark returns the commit time of the first tag, in listing order,
// whose name does not end with a pre-release indicator. It returns nil when
// no such tag exists, meaning the whole branch history is released.
func ResolveWatermark(tags []Tag) *Watermark {
	for _, tag := range tags {
		if hasPreReleaseSuffix(tag.Name) {
			continue
		}
		return NewWatermark(tag.Commit.CommittedDate)
	}
	return nil
}

// TagExists reports whether a tag named exactly version exists.
func TagExists(tags []Tag, version string) bool {
	for _, tag := range tags {
		if tag.Name == version {
			return true
		}
	}
	return false
}
