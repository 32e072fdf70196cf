// Package coach asks a language model for a commentary on the user's
// monthly reports.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"google.golang.org/genai"
)

// DefaultModel is used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const instruction = `
You are a friendly coach for a habit of daily micro-investing: every day the
user contributes, 100 INR go to Bitcoin and 10 INR to gold.
Each month the user may write a report with a profit, a loss and a note.
Only locked reports are final.

Use the tools to read the figures before answering. Be short, concrete and
encouraging. Never give financial advice about buying or selling.
`

// MaxRounds bounds the function calls answered for a single message.
const MaxRounds = 5

// Coach is a chat with the model.
type Coach struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	send      func(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// New returns a coach able to read s. q prices the invested amounts.
func New(model string, s *invers.Snapshot, q invers.Quote) *Coach {
	if model == "" {
		model = DefaultModel
	}
	functions := []Function{
		MonthlyReport{Reports: s.Reports},
		HabitStats{Stats: invers.Compute(s.Ledger, s.Reports, q)},
	}
	return &Coach{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools:             []*genai.Tool{{FunctionDeclarations: NewDeclaration(functions)}},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
		Library: NewLibrary(functions),
	}
}

// Start opens the chat.
func (c *Coach) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, c.ModelName, c.Config, nil)
	if err != nil {
		return fmt.Errorf("start coach chat: %w", err)
	}
	c.send = chat.Send
	return nil
}

// Ask sends a message and answers the model's function calls until it
// replies with text, for at most MaxRounds rounds.
func (c *Coach) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	if c.send == nil {
		return "", fmt.Errorf("coach chat not started")
	}
	for range MaxRounds {
		resp, err := c.send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no response from the coach")
		}
		var calls []*genai.Part
		var text strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			switch {
			case p.FunctionCall != nil:
				calls = append(calls, &genai.Part{FunctionResponse: c.Library(ctx, p.FunctionCall)})
			case p.Text != "":
				text.WriteString(p.Text)
			}
		}
		if len(calls) == 0 {
			return text.String(), nil
		}
		parts = calls
	}
	return "", fmt.Errorf("coach still calling functions after %d rounds", MaxRounds)
}

// Prompt returns the request for a commentary on a month, or on the whole
// year when monthIndex is negative.
func Prompt(monthIndex int) string {
	if monthIndex < 0 || monthIndex >= date.Months {
		return "Review my locked monthly reports of the year and my contribution streak. What went well, what should I watch?"
	}
	return fmt.Sprintf("Comment on my %s report and how it fits with the rest of the year.", date.MonthName(monthIndex))
}
