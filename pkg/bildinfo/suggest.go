package bildinfo

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// suggestPrompt asks for tags in the same shape users add by hand.
var suggestPrompt = "generate 1-5 comma-separated one-word tags describing this photo. " +
	"Tags should be lowercase present-tense singular words that a photographer " +
	"would organize an album with. Do not combine multiple words. " +
	"Do not use plural words."

// SuggestTags proposes quick-add tags for an image using Gemini. The
// suggestions are normalized like hand-typed input and capped at five.
func SuggestTags(ctx context.Context, client *genai.Client, model string, path string) ([]string, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(bs, "image/jpeg"),
		genai.NewPartFromText(suggestPrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	tags := []string{}
	for _, t := range strings.Split(strings.ReplaceAll(resp.Text(), " ", ""), ",") {
		if t = normalizeTag(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > 5 {
		tags = tags[0:5]
	}
	return tags, nil
}
