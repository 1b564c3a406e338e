package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"notesapi/internal/notes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for note operations
func NewServer(svc *notes.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Notes",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: create_note - Create a note
	s.AddTool(
		mcp.NewTool("create_note",
			mcp.WithDescription("Create a note. Title and description must each be at least 2 characters."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Note title"),
			),
			mcp.WithString("description",
				mcp.Required(),
				mcp.Description("Note body, markdown allowed"),
			),
		),
		handleCreateNote(svc),
	)

	// Tool: get_note - Get a specific note by ID
	s.AddTool(
		mcp.NewTool("get_note",
			mcp.WithDescription("Get a specific note by its ID."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("The note ID (positive integer)"),
			),
		),
		handleGetNote(svc),
	)

	// Tool: list_notes - Get every note
	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List every note in creation order."),
		),
		handleListNotes(svc),
	)

	// Tool: update_note - Overwrite a note
	s.AddTool(
		mcp.NewTool("update_note",
			mcp.WithDescription("Replace the title and description of an existing note."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("The note ID (positive integer)"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("New title"),
			),
			mcp.WithString("description",
				mcp.Required(),
				mcp.Description("New description"),
			),
		),
		handleUpdateNote(svc),
	)

	return s
}

func handleCreateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := notes.NoteInput{
			Title:       req.GetString("title", ""),
			Description: req.GetString("description", ""),
		}

		note, err := svc.Create(ctx, input)
		if err != nil {
			return toolError("create note", 0, err), nil
		}
		return noteResult(note), nil
	}
}

func handleGetNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := noteID(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		note, err := svc.Get(ctx, id)
		if err != nil {
			return toolError("get note", id, err), nil
		}
		return noteResult(note), nil
	}
}

func handleListNotes(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteList, err := svc.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
		}

		data, _ := json.MarshalIndent(noteList, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleUpdateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := noteID(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := notes.NoteInput{
			Title:       req.GetString("title", ""),
			Description: req.GetString("description", ""),
		}

		note, err := svc.Update(ctx, id, input)
		if err != nil {
			return toolError("update note", id, err), nil
		}
		return noteResult(note), nil
	}
}

// Helper functions

// noteID reads the id argument. JSON numbers arrive as floats, so anything
// with a fractional part is rejected rather than truncated.
func noteID(req mcp.CallToolRequest) (int64, error) {
	f, err := req.RequireFloat("id")
	if err != nil {
		return 0, errors.New("id is required")
	}
	if f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("id must be an integer, got %v", f)
	}
	return int64(f), nil
}

func noteResult(note *notes.Note) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(data))
}

func toolError(action string, id int64, err error) *mcp.CallToolResult {
	if errors.Is(err, notes.ErrNoteNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("Note not found for id %d", id))
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
