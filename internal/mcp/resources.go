package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vijay-prabhu/subjectline/internal/output"
)

// Resource URIs
const (
	ResourceHistory = "subjectline://history"
	ResourceLexicon = "subjectline://lexicon"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         ResourceHistory,
		Name:        "history",
		Description: "Recent subject line analyses with scores, newest first",
		MIMEType:    "text/plain",
	}, s.readHistory)

	s.mcp.AddResource(&mcp.Resource{
		URI:         ResourceLexicon,
		Name:        "lexicon",
		Description: "Engagement and spam trigger words the analyzer matches, in evaluation order",
		MIMEType:    "application/json",
	}, s.readLexicon)
}

func (s *Server) readHistory(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	results, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      ResourceHistory,
			MIMEType: "text/plain",
			Text:     formatList(results),
		}},
	}, nil
}

func (s *Server) readLexicon(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	lex := output.Lexicon{
		EngagementWords: s.analyzer.EngagementWords(),
		SpamWords:       s.analyzer.SpamWords(),
	}

	var sb strings.Builder
	if err := output.JSONTo(&sb, lex); err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      ResourceLexicon,
			MIMEType: "application/json",
			Text:     sb.String(),
		}},
	}, nil
}
