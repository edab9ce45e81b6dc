package ima

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownContentType is returned when a content type string is not recognised.
var ErrUnknownContentType = errors.New("unknown content type")

// DefaultPlayerType identifies this integration to the SDK.
const DefaultPlayerType = "DAISamplePlayer"

// ContentType selects which kind of stream is requested.
type ContentType int

const (
	LiveHLS ContentType = iota
	VODHLS
	VODDASH
)

// String returns the config spelling of the content type.
func (c ContentType) String() string {
	switch c {
	case LiveHLS:
		return "live_hls"
	case VODHLS:
		return "vod_hls"
	case VODDASH:
		return "vod_dash"
	default:
		return "unknown"
	}
}

// ParseContentType parses "live_hls", "vod_hls" or "vod_dash" (any case).
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live_hls":
		return LiveHLS, nil
	case "vod_hls":
		return VODHLS, nil
	case "vod_dash":
		return VODDASH, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
}

// StreamFormat is the manifest format of a VOD stream.
type StreamFormat int

const (
	FormatHLS StreamFormat = iota
	FormatDASH
)

func (f StreamFormat) String() string {
	if f == FormatDASH {
		return "DASH"
	}
	return "HLS"
}

// StreamRequest is either a live request (asset key) or a VOD request
// (content source + video id + format). Build one with the constructors.
type StreamRequest struct {
	assetKey        string
	contentSourceID string
	videoID         string
	apiKey          string
	format          StreamFormat
}

// NewLiveStreamRequest creates a live stream request.
func NewLiveStreamRequest(assetKey, apiKey string) StreamRequest {
	return StreamRequest{assetKey: assetKey, apiKey: apiKey, format: FormatHLS}
}

// NewVODStreamRequest creates a VOD stream request.
func NewVODStreamRequest(contentSourceID, videoID, apiKey string, format StreamFormat) StreamRequest {
	return StreamRequest{
		contentSourceID: contentSourceID,
		videoID:         videoID,
		apiKey:          apiKey,
		format:          format,
	}
}

func (r StreamRequest) IsLive() bool            { return r.assetKey != "" }
func (r StreamRequest) AssetKey() string        { return r.assetKey }
func (r StreamRequest) ContentSourceID() string { return r.contentSourceID }
func (r StreamRequest) VideoID() string         { return r.videoID }
func (r StreamRequest) APIKey() string          { return r.apiKey }
func (r StreamRequest) Format() StreamFormat    { return r.format }

func (r StreamRequest) String() string {
	if r.IsLive() {
		return fmt.Sprintf("live(%s)", r.assetKey)
	}
	return fmt.Sprintf("vod(%s/%s, %s)", r.contentSourceID, r.videoID, r.format)
}

// StreamIDs holds the identifiers for every content type.
type StreamIDs struct {
	AssetKey            string
	HLSContentSourceID  string
	HLSVideoID          string
	DASHContentSourceID string
	DASHVideoID         string
}

// DefaultStreamIDs returns the public IMA sample streams.
func DefaultStreamIDs() StreamIDs {
	return StreamIDs{
		AssetKey:            "sN_IYUG8STe1ZzhIIE_ksA",
		HLSContentSourceID:  "2490667",
		HLSVideoID:          "googleio-highlights",
		DASHContentSourceID: "2474148",
		DASHVideoID:         "bbb-clear",
	}
}

// BuildStreamRequest picks the request for the selected content type.
func BuildStreamRequest(ct ContentType, ids StreamIDs, apiKey string) (StreamRequest, error) {
	switch ct {
	case LiveHLS:
		return NewLiveStreamRequest(ids.AssetKey, apiKey), nil
	case VODHLS:
		return NewVODStreamRequest(ids.HLSContentSourceID, ids.HLSVideoID, apiKey, FormatHLS), nil
	case VODDASH:
		return NewVODStreamRequest(ids.DASHContentSourceID, ids.DASHVideoID, apiKey, FormatDASH), nil
	default:
		return StreamRequest{}, fmt.Errorf("%w: %d", ErrUnknownContentType, int(ct))
	}
}

// Settings are SDK-wide options.
type Settings struct {
	PlayerType string
}

// DefaultSettings returns settings with the sample player type.
func DefaultSettings() Settings {
	return Settings{PlayerType: DefaultPlayerType}
}
