package papersec

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/papersec/kit"
)

// RegisterMCP registers papersec tools on an MCP server.
func (e *Extractor) RegisterMCP(srv *mcp.Server) {
	e.registerExtractTool(srv)
	e.registerAssessTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- extract ---

type extractReq struct {
	Markdown string `json:"markdown"`
}

func (e *Extractor) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "papersec_extract",
		Description: "Extract the canonical sections (Abstract, Introduction, Methods, Results & Discussion, Conclusion) from a scientific paper's Markdown text.",
		InputSchema: inputSchema(map[string]any{
			"markdown": map[string]any{"type": "string", "description": "Markdown text of the paper"},
		}, []string{"markdown"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractReq)
		return e.Extract(ctx, r.Markdown)
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r extractReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Logging(e.logger, "papersec_extract")(endpoint), decode)
}

// --- assess ---

type assessReq struct {
	Markdown string `json:"markdown"`
}

func (e *Extractor) registerAssessTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "papersec_assess",
		Description: "Run the heuristic pass only and report section map quality, without calling any model.",
		InputSchema: inputSchema(map[string]any{
			"markdown": map[string]any{"type": "string", "description": "Markdown text of the paper"},
		}, []string{"markdown"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*assessReq)
		sections, unrecognized := e.ExtractHeuristic(r.Markdown)
		report := e.Assess(sections)
		return map[string]any{
			"report":       report,
			"sections":     sectionNames(sections),
			"unrecognized": unrecognized,
		}, nil
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r assessReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, kit.Logging(e.logger, "papersec_assess")(endpoint), decode)
}

// sectionNames returns the present canonical names in reading order.
func sectionNames(m SectionMap) []string {
	names := make([]string, 0, len(m))
	for _, name := range CanonicalSections {
		if _, ok := m[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
