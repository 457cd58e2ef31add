package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/labelscope/labelscope/internal/model"
	"github.com/labelscope/labelscope/internal/util"
)

// defaultBlockConfidence is used when the vision API omits per-annotation
// confidence, which it does for plain text detection
const defaultBlockConfidence = 0.9

// VisionClient reads label images through a Google Vision style
// images:annotate endpoint
type VisionClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	maxBytes   int64
}

// NewVisionClient creates a vision OCR client from configuration
func NewVisionClient(cfg model.OCRConfig) *VisionClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxBytes := cfg.MaxBodySize
	if maxBytes == 0 {
		maxBytes = 10 << 20
	}

	return &VisionClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, ""),
			},
		},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		maxBytes: maxBytes,
	}
}

// Name returns the provider name
func (c *VisionClient) Name() string {
	return "vision"
}

// Request/response shapes for the images:annotate wire format. Only the
// fields labelscope reads are declared.

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateImage struct {
	Content string `json:"content"` // base64
}

type annotateFeature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []annotateImageResponse `json:"responses"`
}

type annotateImageResponse struct {
	TextAnnotations []textAnnotation `json:"textAnnotations"`
	Error           *annotateError   `json:"error"`
}

type textAnnotation struct {
	Description  string        `json:"description"`
	Confidence   float64       `json:"confidence"`
	BoundingPoly *boundingPoly `json:"boundingPoly"`
}

type boundingPoly struct {
	Vertices []vertex `json:"vertices"`
}

type vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type annotateError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Recognize sends the image for document text detection and maps the
// annotations to evidence. The first annotation is the full recognized
// text; the rest are individual blocks with positions.
func (c *VisionClient) Recognize(ctx context.Context, image []byte) (*model.Evidence, error) {
	payload := annotateRequest{
		Requests: []annotateImageRequest{
			{
				Image:    annotateImage{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []annotateFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal annotate request: %w", err)
	}

	endpoint := c.endpoint
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	// Read body with size limit
	limitedReader := io.LimitReader(resp.Body, c.maxBytes)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read ocr response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ocr endpoint returned %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed annotateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	if len(parsed.Responses) == 0 {
		return nil, fmt.Errorf("empty ocr response")
	}

	first := parsed.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("ocr error %d: %s", first.Error.Code, first.Error.Message)
	}

	return evidenceFromAnnotations(first.TextAnnotations), nil
}

// evidenceFromAnnotations maps vision annotations to evidence, applying
// glyph corrections to every piece of text
func evidenceFromAnnotations(annotations []textAnnotation) *model.Evidence {
	ev := &model.Evidence{
		TextBlocks: []model.TextBlock{},
	}
	if len(annotations) == 0 {
		return ev
	}

	ev.FullText = CorrectText(annotations[0].Description)

	var confSum float64
	for _, a := range annotations[1:] {
		conf := a.Confidence
		if conf == 0 {
			conf = defaultBlockConfidence
		}
		block := model.TextBlock{
			Text:       CorrectText(a.Description),
			Confidence: conf,
		}
		if a.BoundingPoly != nil {
			block.BoundingBox = boxFromVertices(a.BoundingPoly.Vertices)
		}
		ev.TextBlocks = append(ev.TextBlocks, block)
		confSum += conf
	}

	if len(ev.TextBlocks) > 0 {
		ev.Confidence = confSum / float64(len(ev.TextBlocks))
	} else {
		ev.Confidence = defaultBlockConfidence
	}

	return ev
}

// boxFromVertices converts a bounding polygon to an axis-aligned box
func boxFromVertices(vertices []vertex) model.BoundingBox {
	if len(vertices) == 0 {
		return model.BoundingBox{}
	}

	minX, minY := vertices[0].X, vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}

	return model.BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
