// Package scripted is an in-process ad SDK that plays back a fixed ad
// timeline. It drives the ima contracts deterministically so the wrapper can
// run without network access to the DAI service.
package scripted

import (
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// ErrInvalidTimeline is returned by Validate.
var ErrInvalidTimeline = errors.New("invalid timeline")

// Timeline describes a stitched stream and the ad breaks inside it.
type Timeline struct {
	StreamURL string        `koanf:"stream_url"`
	Duration  time.Duration `koanf:"duration"`
	Breaks    []Break       `koanf:"breaks"`

	// FailWith makes the stream fail with this message: at request time
	// when FailAt is zero, otherwise once playback reaches FailAt.
	FailWith string        `koanf:"fail_with"`
	FailCode int           `koanf:"fail_code"`
	FailAt   time.Duration `koanf:"fail_at"`
}

// Break is one ad pod.
type Break struct {
	Start time.Duration `koanf:"start"`
	Ads   []Ad          `koanf:"ads"`
}

// Ad is one linear ad inside a break.
type Ad struct {
	ID         string            `koanf:"id"`
	Title      string            `koanf:"title"`
	Duration   time.Duration     `koanf:"duration"`
	Companions []ima.CompanionAd `koanf:"companions"`
}

// End returns the stream time at which the break finishes.
func (b Break) End() time.Duration {
	end := b.Start
	for _, ad := range b.Ads {
		end += ad.Duration
	}
	return end
}

// Validate checks that breaks are ordered, non-overlapping and inside the stream.
func (tl Timeline) Validate() error {
	if tl.StreamURL == "" {
		return fmt.Errorf("%w: stream_url is empty", ErrInvalidTimeline)
	}
	if tl.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidTimeline)
	}
	var prevEnd time.Duration
	for i, b := range tl.Breaks {
		if len(b.Ads) == 0 {
			return fmt.Errorf("%w: break %d has no ads", ErrInvalidTimeline, i)
		}
		if i > 0 && b.Start < prevEnd {
			return fmt.Errorf("%w: break %d overlaps break %d", ErrInvalidTimeline, i, i-1)
		}
		for j, ad := range b.Ads {
			if ad.Duration <= 0 {
				return fmt.Errorf("%w: break %d ad %d has no duration", ErrInvalidTimeline, i, j)
			}
		}
		if b.End() > tl.Duration {
			return fmt.Errorf("%w: break %d ends after the stream", ErrInvalidTimeline, i)
		}
		prevEnd = b.End()
	}
	return nil
}

// DefaultTimeline is a ten-minute stream with a pre-roll, an interactive
// mid-roll and a post-content mid-roll.
func DefaultTimeline() Timeline {
	return Timeline{
		StreamURL: "https://dai.google.com/linear/hls/event/sample/master.m3u8",
		Duration:  10 * time.Minute,
		Breaks: []Break{
			{
				Start: 0,
				Ads: []Ad{
					{ID: "pre-1", Title: "Pre-roll", Duration: 15 * time.Second},
				},
			},
			{
				Start: 2 * time.Minute,
				Ads: []Ad{
					{
						ID:       "mid-1",
						Title:    "Innovid interactive",
						Duration: 30 * time.Second,
						Companions: []ima.CompanionAd{
							{APIFramework: "static", ResourceValue: "https://cdn.example/banner.png", Width: 300, Height: 250},
							{APIFramework: "innovid", ResourceValue: "https://video.innovid.com/tag/get.php?tag=1hl9i8", Width: 1280, Height: 720},
						},
					},
					{ID: "mid-2", Title: "Linear", Duration: 15 * time.Second},
				},
			},
			{
				Start: 6 * time.Minute,
				Ads: []Ad{
					{ID: "mid-3", Title: "Linear", Duration: 20 * time.Second},
				},
			},
		},
	}
}

// LoadTimeline reads a timeline from a TOML file.
func LoadTimeline(path string) (Timeline, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return Timeline{}, fmt.Errorf("load timeline %s: %w", path, err)
	}
	var tl Timeline
	if err := k.Unmarshal("", &tl); err != nil {
		return Timeline{}, fmt.Errorf("decode timeline %s: %w", path, err)
	}
	if err := tl.Validate(); err != nil {
		return Timeline{}, err
	}
	return tl, nil
}
