// Package imagedit edits pack photos with a Gemini image model
package imagedit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"batchtrace/internal/core/packimage"
	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/logger"

	"google.golang.org/genai"
)

// DefaultModel is the image capable Gemini model
const DefaultModel = "gemini-2.5-flash-image"

// ErrNoImage is returned when the model answers without an image part
var ErrNoImage = errors.New("No image returned from Gemini.")

// Editor applies a free text instruction to an image
type Editor interface {
	Edit(ctx context.Context, image, prompt string) (string, error)
}

// generator is the slice of genai.Models the editor calls
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options configures the Gemini editor
type Options struct {
	APIKey string
	Model  string
}

// Gemini is the genai backed Editor
type Gemini struct {
	gen   generator
	model string
	log   logger.Logger
}

// New dials the Gemini API. An empty key yields an editor that always
// reports itself unavailable
func New(ctx context.Context, o Options) (Editor, error) {
	if strings.TrimSpace(o.APIKey) == "" {
		return Disabled{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  o.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("imagedit: create genai client: %w", err)
	}
	return newGemini(client.Models, o.Model), nil
}

func newGemini(gen generator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{gen: gen, model: model, log: *logger.Named("imagedit")}
}

// Edit sends the image and instruction and returns the first image part,
// normalised to a JPEG data URL. image may be a data URL or bare base64
func (g *Gemini) Edit(ctx context.Context, image, prompt string) (string, error) {
	mime, data, err := decodeImage(image)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "image is not valid base64")
	}
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mime, Data: data}},
		genai.NewPartFromText(fmt.Sprintf("Edit this image: %s. Return ONLY the edited image.", prompt)),
	}
	resp, err := g.gen.GenerateContent(ctx, g.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil)
	if err != nil {
		g.log.Error().Err(err).Str("model", g.model).Msg("gemini image edit failed")
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "image edit failed")
	}
	out, outMime := firstImage(resp)
	if out == nil {
		return "", perr.Wrapf(ErrNoImage, perr.ErrorCodeUnavailable, "%s", ErrNoImage.Error())
	}
	if norm, err := packimage.Normalize(out); err == nil {
		return packimage.EncodeDataURL("image/jpeg", norm), nil
	}
	return packimage.EncodeDataURL(outMime, out), nil
}

func firstImage(resp *genai.GenerateContentResponse) ([]byte, string) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ""
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			mime := p.InlineData.MIMEType
			if mime == "" {
				mime = "image/jpeg"
			}
			return p.InlineData.Data, mime
		}
	}
	return nil, ""
}

func decodeImage(s string) (string, []byte, error) {
	mime, data, err := packimage.DecodeDataURL(s)
	if err == nil {
		if mime == "" {
			mime = "image/jpeg"
		}
		return mime, data, nil
	}
	if !errors.Is(err, packimage.ErrNotDataURL) {
		return "", nil, err
	}
	data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return "", nil, err
	}
	return "image/jpeg", data, nil
}

// Disabled is the Editor used when no API key is configured
type Disabled struct{}

// Edit always fails unavailable
func (Disabled) Edit(context.Context, string, string) (string, error) {
	return "", perr.Unavailablef("image editing is not configured")
}
