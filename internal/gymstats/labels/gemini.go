// Package labels names what is on a food photo.
package labels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.0-flash"
	maxLabels    = 5
)

const detectPrompt = `List the foods or dishes visible in this photo, most prominent first. ` +
	`Respond only with a JSON array of short lowercase names, for example ["chicken rice", "cucumber"]. ` +
	`Respond with [] if there is no food in the photo.`

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// Detector returns labels for an image, most relevant first.
type Detector interface {
	DetectLabels(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// GeminiDetector labels images with a multimodal Gemini model. The client is shared
// with the coach generator, see coach.NewGeminiClient.
type GeminiDetector struct {
	client *genai.Client
	model  string
}

func NewGeminiDetector(client *genai.Client, model string) *GeminiDetector {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiDetector{
		client: client,
		model:  model,
	}
}

// SupportedMimeType reports whether the detector accepts images of the given type.
func SupportedMimeType(mimeType string) bool {
	return allowedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

func (d *GeminiDetector) DetectLabels(ctx context.Context, image []byte, mimeType string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "labels.gemini.detect")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("model", d.model))
	span.SetAttributes(attribute.String("mime_type", mimeType))
	span.SetAttributes(attribute.Int("image.size", len(image)))

	if len(image) == 0 {
		return nil, errors.New("empty image")
	}
	if !SupportedMimeType(mimeType) {
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, strings.ToLower(mimeType)),
			genai.NewPartFromText(detectPrompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0)),
	}

	resp, err := d.client.Models.GenerateContent(ctx, d.model, contents, config)
	if err != nil {
		return nil, err
	}

	labels, err := parseLabels(resp.Text())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("labels", len(labels)))

	return labels, nil
}

func parseLabels(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}

	labels := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		labels = append(labels, l)
		if len(labels) == maxLabels {
			break
		}
	}

	return labels, nil
}
