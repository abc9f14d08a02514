package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

var (
	ErrNoContent = errors.New("empty completion")
)

type Client struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Client {
	return &Client{cfg: cfg}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) complete(system, user string, temp float64) (string, error) {
	req := &chatRequest{
		Model:       c.cfg.OpenAI.Model,
		Temperature: temp,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.OpenAI.Key}
	if err = misc.RequestWithHeaders("POST", c.cfg.OpenAI.Endpoint, string(b), headers, &resp); err != nil {
		return "", &common.ExternalError{Provider: "openai", Err: err}
	}
	if resp.Error != nil {
		return "", &common.ExternalError{Provider: "openai", Err: errors.New(resp.Error.Message)}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &common.ExternalError{Provider: "openai", Err: ErrNoContent}
	}
	return resp.Choices[0].Message.Content, nil
}

const suggestSystem = `You are a brand partnership researcher for content creators. ` +
	`Respond ONLY with a JSON array of objects with the keys: brandName, fitReason, ` +
	`outreachDraft, matchScore (0-100), dealType, estimatedRate, brandCountry, ` +
	`requiresShipping, brandWebsite, brandEmail. No prose, no markdown.`

// Suggest asks the model for up to count candidate brands. Either profile
// or niche must be set; exclusions are passed along so the model skips
// brands the creator has already seen.
func (c *Client) Suggest(profile *common.CreatorProfile, niche string, count int, exclude []string) ([]*common.BrandCandidate, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d brands likely to sponsor this creator.\n", count)

	if profile != nil {
		fmt.Fprintf(&b, "Country: %s\n", profile.Country)
		fmt.Fprintf(&b, "Niches: %s\n", strings.Join(profile.TopNiches, ", "))
		if len(profile.BrandCategories) > 0 {
			fmt.Fprintf(&b, "Interested in brand categories: %s\n", strings.Join(profile.BrandCategories, ", "))
		}
		if len(profile.DealTypes) > 0 {
			fmt.Fprintf(&b, "Preferred deal types: %s\n", strings.Join(profile.DealTypes, ", "))
		}
		if len(profile.Platforms) > 0 {
			fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(profile.Platforms, ", "))
		}
		if lang := profile.PrimaryLanguage(); lang != "" {
			fmt.Fprintf(&b, "Content language: %s, preferred currency: %s\n", lang, profile.Currency)
		}
		if profile.AcceptsInternational {
			b.WriteString("International brands are welcome.\n")
		}
	} else {
		fmt.Fprintf(&b, "Creator niche: %s\n", niche)
	}

	if len(exclude) > 0 {
		fmt.Fprintf(&b, "Do NOT suggest any of these brands: %s\n", strings.Join(exclude, ", "))
	}

	content, err := c.complete(suggestSystem, b.String(), 0.8)
	if err != nil {
		return nil, err
	}

	raw, err := ParseCandidates(content)
	if err != nil {
		return nil, &common.ExternalError{Provider: "openai", Err: err}
	}

	// Drop malformed entries at the boundary so the pipeline only ever
	// sees validated candidates.
	out := raw[:0]
	for _, cand := range raw {
		if cand.Sanitize() {
			out = append(out, cand)
		}
	}
	return out, nil
}

const replySystem = `You draft short, professional negotiation replies for content ` +
	`creators talking to brands. Respond with the reply text only.`

// SuggestReply drafts a response based on the deal's conversation history.
func (c *Client) SuggestReply(deal *common.Deal, convs []*common.ConversationLog) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Deal: %s with %s, status %s.\n", deal.Title, deal.BrandName, deal.Status)
	if deal.ProposedAmount > 0 {
		fmt.Fprintf(&b, "Proposed amount: %.2f\n", deal.ProposedAmount)
	}
	b.WriteString("Conversation so far (oldest first):\n")
	for _, cl := range convs {
		fmt.Fprintf(&b, "- [%s %s] %s", cl.Channel, cl.Direction, cl.Summary)
		if cl.Disposition != "" {
			fmt.Fprintf(&b, " (disposition: %s)", cl.Disposition)
		}
		if cl.Amount > 0 {
			fmt.Fprintf(&b, " (amount discussed: %.2f)", cl.Amount)
		}
		b.WriteByte('\n')
	}
	b.WriteString("Draft the creator's next reply.")

	return c.complete(replySystem, b.String(), 0.7)
}
