package agent

import (
	"context"
	"fmt"

	"github.com/boursier/folio"
	"github.com/boursier/folio/docs"
	"github.com/boursier/folio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his portfolio: what he holds, what it is worth,
			and what his money actually earned. Devise a plan of questions to ask each expert and
			come up with the best response to the user's request.

			The user will assume that you know about his instruments, check the portfolio first
			to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert in charge of the user's operation log and
// its analytics. Its tools answer from the live session, the reports it
// reads are the ones the summary and log commands print.
func NewAnalyst(session *folio.Session, book *folio.Book) *Expert {
	lib := []Function{
		summaryTool(session),
		logTool(book),
		topicTool(),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the user's portfolio:
		held instruments, valuations, invested capital, dividends, and money weighted returns
		over every analysis window. Ask him anything about what the user owns and how it performed.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a financial analyst in charge of the user's portfolio.
				You know how to use the Tools to extract relevant information about the
				user's holdings and their returns. You are part of a team of experts,
				yours is everything recorded in the user's operation log. Pardon their
				approximative language and figure out what they meant.

				The reports are markdown. Quantities and returns come straight from the
				user's own operation log, do not recompute them.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func respond(id, name string, output string, err error) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		fresp.Response["error"] = err.Error()
		return fresp
	}
	fresp.Response["output"] = output
	return fresp
}

func summaryTool(session *folio.Session) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "portfolio_summary",
			Description: "Returns the portfolio summary report: one line per held instrument with valuation, invested capital, gain, and money weighted returns, plus portfolio totals.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			assets, err := session.AssetSummaries()
			if err != nil {
				return respond(id, "portfolio_summary", "", err)
			}
			total, ok, err := session.PortfolioSummary()
			if err != nil {
				return respond(id, "portfolio_summary", "", err)
			}
			if !ok {
				return respond(id, "portfolio_summary", "The portfolio is empty.", nil)
			}
			return respond(id, "portfolio_summary", renderer.SummaryMarkdown(assets, total, folio.Today()), nil)
		},
	}
}

func logTool(book *folio.Book) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "operation_log",
			Description: "Returns the full operation log: every buy, sell, dividend and split the user recorded, with row numbers.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return respond(id, "operation_log", renderer.LogMarkdown(book), nil)
		},
	}
}

func topicTool() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "documentation",
			Description: "Returns the documentation of a topic. Topics: operations, windows, returns. Use '*' for everything.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The topic name, or '*' for all topics.",
					},
				},
				Required: []string{"topic"},
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, ok := args["topic"].(string)
			if !ok {
				return respond(id, "documentation", "", fmt.Errorf("invalid topic %v", args["topic"]))
			}
			content, err := docs.GetTopic(topic)
			return respond(id, "documentation", content, err)
		},
	}
}
