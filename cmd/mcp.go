package cmd

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve treegraft as an MCP tool over stdio",
	Long: `Exposes plan_structure and merge_structure as Model Context Protocol
tools so coding agents can hand over a tree description directly instead of
shelling out. The same non-destructive rules apply either way.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := server.NewMCPServer("treegraft", version)

		treeArg := mcp.WithString("tree", mcp.Required(),
			mcp.Description("Tree description text, one entry per line, tree glyphs or indentation"))
		targetArg := mcp.WithString("target", mcp.Required(),
			mcp.Description("Absolute path of the project directory to merge into"))
		dirsArg := mcp.WithBoolean("dirs_only",
			mcp.Description("Create directories only, never files"))

		s.AddTool(
			mcp.NewTool("plan_structure",
				mcp.WithDescription("Preview how a tree description would merge into a directory, without mutating anything"),
				treeArg, targetArg, dirsArg),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleTool(ctx, req, true)
			},
		)
		s.AddTool(
			mcp.NewTool("merge_structure",
				mcp.WithDescription("Merge a tree description into a directory: create missing entries, preserve existing work, skip protected paths"),
				treeArg, targetArg, dirsArg),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleTool(ctx, req, false)
			},
		)

		return server.ServeStdio(s)
	},
}

func handleTool(ctx context.Context, req mcp.CallToolRequest, dryRun bool) (*mcp.CallToolResult, error) {
	treeText, err := req.RequireString("tree")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ropts := runOptions{
		dirsOnly: req.GetBool("dirs_only", false),
		dryRun:   dryRun,
	}
	report, err := runPipeline(ctx, treeText, target, ropts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merge failed: %v", err)), nil
	}
	return mcp.NewToolResultText(oj.JSON(report, 2)), nil
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
