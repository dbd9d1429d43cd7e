// Package mcptools exposes request synthesis and .http scaffolding as MCP
// tools, so that agents can fill requests the way an editor action would.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/masnyjimmy/srihc/httpfile"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/scaffold"
	"github.com/masnyjimmy/srihc/synth"
)

// RegisterAll registers all tools with the MCP server.
func RegisterAll(s *server.MCPServer, resolver resolve.Resolver, opts scaffold.Options) {
	s.AddTool(
		mcp.NewTool("synthesize_request",
			mcp.WithDescription("Render the headers, JSON body skeleton, query string and multipart section for a Spring endpoint"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Request path (e.g. /api/users/1)")),
			mcp.WithString("method", mcp.Description("HTTP method, narrows the match when several endpoints share a path")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			method := mcp.ParseString(req, "method", "")
			path := mcp.ParseString(req, "path", "")
			return handleSynthesize(ctx, resolver, opts, method, path)
		},
	)

	s.AddTool(
		mcp.NewTool("scaffold_http_file",
			mcp.WithDescription("Fill the request under the given position of an .http file with its query string, headers and body"),
			mcp.WithString("file", mcp.Required(), mcp.Description("Path of the .http file")),
			mcp.WithNumber("offset", mcp.Description("Caret offset in bytes")),
			mcp.WithNumber("line", mcp.Description("Caret line, 1-based (used when offset is omitted)")),
			mcp.WithNumber("column", mcp.Description("Caret column, 1-based (defaults to 1)")),
			mcp.WithBoolean("dry_run", mcp.Description("Return the planned edits without writing the file")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			caret := caretArgs{
				Offset: mcp.ParseInt(req, "offset", -1),
				Line:   mcp.ParseInt(req, "line", 0),
				Column: mcp.ParseInt(req, "column", 1),
			}
			file := mcp.ParseString(req, "file", "")
			dryRun := mcp.ParseBoolean(req, "dry_run", false)
			return handleScaffold(ctx, resolver, opts, file, caret, dryRun)
		},
	)
}

type synthesizeResult struct {
	Method           string       `json:"method"`
	Pattern          string       `json:"pattern"`
	Handler          string       `json:"handler"`
	Result           synth.Result `json:"result"`
	BodyTypeResolved bool         `json:"bodyTypeResolved"`
}

func handleSynthesize(_ context.Context, resolver resolve.Resolver, opts scaffold.Options, method, path string) (*mcp.CallToolResult, error) {
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	plan, err := scaffold.Synthesize(resolver, method, path, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(synthesizeResult{
		Method:           plan.Endpoint.Method,
		Pattern:          plan.Endpoint.Pattern,
		Handler:          plan.Endpoint.Handler,
		Result:           plan.Result,
		BodyTypeResolved: plan.BodyTypeResolved,
	}), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unable to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

type caretArgs struct {
	Offset int
	Line   int
	Column int
}

func (c caretArgs) resolve(doc *httpfile.Document) (int, error) {
	if c.Offset >= 0 {
		return c.Offset, nil
	}
	if c.Line <= 0 {
		return 0, fmt.Errorf("either offset or line is required")
	}
	offset, ok := doc.LineColumnOffset(c.Line, c.Column)
	if !ok {
		return 0, fmt.Errorf("position %d:%d is outside the document", c.Line, c.Column)
	}
	return offset, nil
}

type scaffoldResult struct {
	File    string          `json:"file"`
	Written bool            `json:"written"`
	Handler string          `json:"handler"`
	Edits   []httpfile.Edit `json:"edits"`
	Text    string          `json:"text,omitempty"`
}

func handleScaffold(_ context.Context, resolver resolve.Resolver, opts scaffold.Options, file string, caret caretArgs, dryRun bool) (*mcp.CallToolResult, error) {
	if file == "" {
		return mcp.NewToolResultError("file is required"), nil
	}

	bytes, err := os.ReadFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unable to read %q: %v", file, err)), nil
	}

	doc := httpfile.Parse(string(bytes))

	offset, err := caret.resolve(doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, plan, err := scaffold.Run(doc, offset, resolver, opts)
	if err != nil {
		if scaffold.IsSkip(err) {
			return mcp.NewToolResultText(fmt.Sprintf("Nothing generated: %v", err)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := scaffoldResult{
		File:    file,
		Handler: plan.Endpoint.Handler,
		Edits:   plan.Edits,
	}

	if dryRun {
		out.Text = text
	} else {
		if err := os.WriteFile(file, []byte(text), 0644); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unable to write %q: %v", file, err)), nil
		}
		out.Written = true
	}

	return jsonResult(out), nil
}
