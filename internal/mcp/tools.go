package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names
const (
	ToolAnalyze = "analyze_subject_line"
	ToolList    = "list_analyses"
	ToolGet     = "get_analysis"
	ToolDelete  = "delete_analysis"
	ToolClear   = "clear_analyses"
	ToolStats   = "get_stats"
)

type analyzeInput struct {
	SubjectLine string `json:"subject_line" jsonschema:"The email subject line to evaluate"`
	Save        *bool  `json:"save,omitempty" jsonschema:"Record the result in history (default true). Blank subject lines are never recorded."`
}

type feedbackItem struct {
	Message string `json:"message" jsonschema:"Feedback text"`
	Tone    string `json:"tone" jsonschema:"good or caution"`
}

type analysisOutput struct {
	ID          string         `json:"id" jsonschema:"Analysis ID"`
	SubjectLine string         `json:"subject_line" jsonschema:"The subject line as given"`
	Score       int            `json:"score" jsonschema:"Score from 0 to 100"`
	Rating      string         `json:"rating" jsonschema:"Strong, Fair or Weak"`
	Feedback    []feedbackItem `json:"feedback" jsonschema:"Feedback in rule order"`
	AnalyzedAt  string         `json:"analyzed_at" jsonschema:"RFC 3339 timestamp"`
	Saved       bool           `json:"saved" jsonschema:"Whether the result was recorded in history"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of analyses to return (default: all kept)"`
}

type analysisSummary struct {
	ID          string `json:"id" jsonschema:"Analysis ID"`
	SubjectLine string `json:"subject_line" jsonschema:"The subject line"`
	Score       int    `json:"score" jsonschema:"Score from 0 to 100"`
	AnalyzedAt  string `json:"analyzed_at" jsonschema:"RFC 3339 timestamp"`
}

type listOutput struct {
	Count    int               `json:"count" jsonschema:"Number of analyses returned"`
	Analyses []analysisSummary `json:"analyses" jsonschema:"Analyses, newest first"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Analysis ID"`
}

type deleteOutput struct {
	ID      string `json:"id" jsonschema:"Analysis ID"`
	Deleted bool   `json:"deleted" jsonschema:"Whether the analysis was deleted"`
}

type clearInput struct{}

type clearOutput struct {
	Removed int `json:"removed" jsonschema:"Number of analyses removed"`
}

type statsInput struct{}

type statsOutput struct {
	Count      int     `json:"count" jsonschema:"Number of analyses in history"`
	Average    float64 `json:"average" jsonschema:"Mean score"`
	Strong     int     `json:"strong" jsonschema:"Analyses scoring 70 or more"`
	Weak       int     `json:"weak" jsonschema:"Analyses scoring under 40"`
	BestID     string  `json:"best_id,omitempty" jsonschema:"ID of the highest scoring analysis"`
	BestScore  *int    `json:"best_score,omitempty" jsonschema:"Highest score"`
	WorstID    string  `json:"worst_id,omitempty" jsonschema:"ID of the lowest scoring analysis"`
	WorstScore *int    `json:"worst_score,omitempty" jsonschema:"Lowest score"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolAnalyze,
		Description: "Score an email subject line from 0 to 100 and return ordered feedback on length, engaging words, spam triggers, capitalization, special characters, personalization, curiosity and urgency.",
	}, s.handleAnalyze)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolList,
		Description: "List recent subject line analyses, newest first.",
	}, s.handleList)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolGet,
		Description: "Get a past analysis with its full feedback.",
	}, s.handleGet)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolDelete,
		Description: "Delete one analysis from history.",
	}, s.handleDelete)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolClear,
		Description: "Delete every analysis from history.",
	}, s.handleClear)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolStats,
		Description: "Summarize the analyses in history: count, average score, best and worst.",
	}, s.handleStats)
}
