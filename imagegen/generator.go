// Package imagegen turns a text prompt into an image encoded as a data URI.
package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// DefaultModel is the image-capable Gemini model used for hero backdrops.
const DefaultModel = "gemini-2.5-flash-image"

// DefaultPrompt is used whenever the caller's prompt is blank.
const DefaultPrompt = "Legendary epic digital art: A massive black ghost pirate ship with glowing electric-cyan magic runes on the hull, floating in a cosmic dark stormy ocean at night. Extreme detail, cinematic 8k resolution, volumetric lighting, 16:9."

const defaultMIMEType = "image/png"

// Generator produces one image per call. A false result means no image could
// be produced; the reason is logged by the implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, bool)
}

// DataURI encodes data as a base64 data URI with the given media type.
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Disabled is used when no API key is configured. It never produces an image.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, bool) { return "", false }

// ParseDataURI splits a base64 data URI into its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data uri has no payload")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data uri is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri: %w", err)
	}
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return mimeType, data, nil
}
