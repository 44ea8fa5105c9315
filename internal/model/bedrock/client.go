// Package bedrock implements the model-client port over Amazon Bedrock.
package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"skiresults/internal/config"
	"skiresults/internal/port"
)

const systemPrompt = "你是一个专业的高山滑雪比赛成绩单识别专家。请准确提取成绩单中的所有信息。"

// Client calls a Qwen3-VL model on Bedrock in vision or text-only mode.
type Client struct {
	runtime     *bedrockruntime.Client
	modelID     string
	maxTokens   int
	temperature float64
}

// NewClient creates a Bedrock-backed model client.
func NewClient(cfg *config.BedrockConfig) (*Client, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &Client{
		runtime:     bedrockruntime.NewFromConfig(awsCfg),
		modelID:     cfg.ModelID,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Generate invokes the model once. With a non-nil image the call is a vision
// request carrying the image as a base64 data URL; otherwise it is text-only.
// The raw assistant text is returned as-is.
func (c *Client) Generate(ctx context.Context, prompt string, image *port.Image) (string, error) {
	var userContent []map[string]interface{}
	if image != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s",
			image.MediaType, base64.StdEncoding.EncodeToString(image.Bytes))
		userContent = append(userContent, map[string]interface{}{
			"type":      "image_url",
			"image_url": map[string]interface{}{"url": dataURL},
		})
	}
	userContent = append(userContent, map[string]interface{}{
		"type": "text",
		"text": prompt,
	})

	body, err := json.Marshal(map[string]interface{}{
		"messages": []map[string]interface{}{
			{
				"role": "system",
				"content": []map[string]interface{}{
					{"type": "text", "text": systemPrompt},
				},
			},
			{
				"role":    "user",
				"content": userContent,
			},
		},
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoking model %s: %w", c.modelID, err)
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling model response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model %s", c.modelID)
	}

	return resp.Choices[0].Message.Content, nil
}
