package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agriconnect/agriconnect/internal/catalog"
	"github.com/agriconnect/agriconnect/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store     *storage.Store
	Labour    catalog.Source
	Tractors  catalog.Source
	Middlemen catalog.Source
}

// NewMCPServer creates an MCP server exposing the marketplace to agents:
// catalog searches, task posting on behalf of a farmer, and the
// announcement feed as both a tool and a resource.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"agriconnect",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("AgriConnect — rural labour marketplace: search tasks, labourers, tractor vendors and middlemen, post farm tasks, and read announcements."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_tasks",
			mcp.WithDescription("Search open farm tasks by free text, location, required skill and rate bounds."),
			mcp.WithString("query", mcp.Description("Free-text search over title, description and skills")),
			mcp.WithString("location", mcp.Description("Location substring filter")),
			mcp.WithString("skill", mcp.Description("Required skill tag")),
			mcp.WithString("status", mcp.Description("Task status (default OPEN)")),
			mcp.WithNumber("min_rate", mcp.Description("Minimum hourly rate")),
			mcp.WithNumber("max_rate", mcp.Description("Maximum hourly rate")),
			mcp.WithString("sort", mcp.Description("Sort key: distance, fare or rating")),
		),
		mcpSearchTasks(deps),
	)

	s.AddTool(
		directoryTool("search_labour",
			"Search the labour directory by free text, location, skill, rate and rating."),
		mcpSearchDirectory(deps.Labour),
	)

	s.AddTool(
		directoryTool("search_tractors",
			"Search tractor and equipment vendors by free text, location, service tag, fare and rating."),
		mcpSearchDirectory(deps.Tractors),
	)

	s.AddTool(
		directoryTool("search_middlemen",
			"Search procurement coordinators by free text, coverage area, commodity and rating."),
		mcpSearchDirectory(deps.Middlemen),
	)

	s.AddTool(
		mcp.NewTool("post_task",
			mcp.WithDescription("Post a farm task on behalf of a farmer."),
			mcp.WithNumber("farmer_id", mcp.Description("ID of the farmer posting the task"), mcp.Required()),
			mcp.WithString("title", mcp.Description("Task title"), mcp.Required()),
			mcp.WithString("location", mcp.Description("Where the work happens"), mcp.Required()),
			mcp.WithString("description", mcp.Description("What the work involves")),
			mcp.WithString("task_type", mcp.Description("Kind of work, e.g. HARVESTING")),
			mcp.WithNumber("hourly_rate", mcp.Description("Offered hourly rate")),
			mcp.WithNumber("estimated_hours", mcp.Description("Estimated hours of work")),
			mcp.WithArray("required_skills", mcp.Description("Skills the task needs")),
		),
		mcpPostTask(deps),
	)

	s.AddTool(
		mcp.NewTool("latest_announcements",
			mcp.WithDescription("Return the most recent announcements, newest first."),
			mcp.WithNumber("limit", mcp.Description("Maximum number of announcements (default 5)")),
			mcp.WithString("category", mcp.Description("Category filter: GOVT, MARKET, WEATHER or GENERAL")),
		),
		mcpLatestAnnouncements(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"agri://announcements",
			"Announcement Feed",
			mcp.WithResourceDescription("Latest announcements as JSON, newest first"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceAnnouncements(deps),
	)

	return s
}

// directoryTool builds one of the directory search tools; the three pages
// share the same filter dimensions.
func directoryTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("query", mcp.Description("Free-text search over name, description and tags")),
		mcp.WithString("location", mcp.Description("Location substring filter")),
		mcp.WithString("tag", mcp.Description("Skill, service or commodity tag")),
		mcp.WithNumber("min_rate", mcp.Description("Minimum rate or fare")),
		mcp.WithNumber("max_rate", mcp.Description("Maximum rate or fare")),
		mcp.WithNumber("min_rating", mcp.Description("Minimum rating")),
		mcp.WithString("sort", mcp.Description("Sort key: distance, fare or rating")),
	)
}

func mcpSearchTasks(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := deps.Store.ListTasks()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list tasks: %v", err)), nil
		}

		status := req.GetString("status", storage.TaskOpen)
		f := catalog.Filter{
			Query:    req.GetString("query", ""),
			Location: req.GetString("location", ""),
			Tag:      req.GetString("skill", ""),
			MinRate:  numberParam(req, "min_rate"),
			MaxRate:  numberParam(req, "max_rate"),
		}

		records := make([]catalog.Record, 0, len(tasks))
		for _, t := range tasks {
			if status != "" && t.Status != status {
				continue
			}
			records = append(records, recordFromTask(t))
		}
		records = f.Apply(records)
		records = catalog.SortRecords(records, catalog.ParseSortKey(req.GetString("sort", "")))

		return mcpJSON(viewResponse(records, catalog.ViewTable))
	}
}

func mcpSearchDirectory(source catalog.Source) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := source.Records(ctx)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to load directory: %v", err)), nil
		}

		f := catalog.Filter{
			Query:     req.GetString("query", ""),
			Location:  req.GetString("location", ""),
			Tag:       req.GetString("tag", ""),
			MinRate:   numberParam(req, "min_rate"),
			MaxRate:   numberParam(req, "max_rate"),
			MinRating: numberParam(req, "min_rating"),
		}
		records = f.Apply(records)
		records = catalog.SortRecords(records, catalog.ParseSortKey(req.GetString("sort", "")))

		return mcpJSON(viewResponse(records, catalog.ViewTable))
	}
}

func mcpPostTask(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		farmerID := req.GetInt("farmer_id", 0)
		if farmerID <= 0 {
			return mcpError("farmer_id is required"), nil
		}
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}
		location, err := req.RequireString("location")
		if err != nil {
			return mcpError("location is required"), nil
		}

		farmer, err := deps.Store.GetUser(int64(farmerID))
		if err != nil {
			return mcpError(fmt.Sprintf("farmer %d not found", farmerID)), nil
		}
		if farmer.UserType != storage.RoleFarmer {
			return mcpError(fmt.Sprintf("user %d is not a farmer", farmerID)), nil
		}

		task := storage.Task{
			FarmerID:       int64(farmerID),
			Title:          title,
			Location:       location,
			Description:    req.GetString("description", ""),
			TaskType:       req.GetString("task_type", ""),
			HourlyRate:     req.GetFloat("hourly_rate", 0),
			EstimatedHours: req.GetFloat("estimated_hours", 0),
			RequiredSkills: req.GetStringSlice("required_skills", nil),
			Status:         storage.TaskOpen,
			StartDate:      time.Now().UTC(),
		}
		created, err := deps.Store.CreateTask(task)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to create task: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Posted task %d: %s", created.ID, created.Title)), nil
	}
}

func mcpLatestAnnouncements(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 5)
		if limit <= 0 {
			limit = 5
		}
		if limit > 50 {
			limit = 50
		}
		category := req.GetString("category", "")

		anns, err := deps.Store.ListAnnouncements()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list announcements: %v", err)), nil
		}

		out := make([]storage.Announcement, 0, limit)
		for _, a := range anns {
			if category != "" && a.Category != category {
				continue
			}
			a.Body = clipRunes(a.Body, 300)
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}

		return mcpJSON(out)
	}
}

func mcpResourceAnnouncements(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		anns, err := deps.Store.ListAnnouncements()
		if err != nil {
			return nil, fmt.Errorf("failed to list announcements: %w", err)
		}
		if len(anns) > 20 {
			anns = anns[:20]
		}

		b, err := json.Marshal(anns)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal announcements: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func numberParam(req mcp.CallToolRequest, key string) string {
	v := req.GetFloat(key, 0)
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%g", v)
}

func clipRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
