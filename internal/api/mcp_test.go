package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/agriconnect/agriconnect/internal/catalog"
	"github.com/agriconnect/agriconnect/internal/storage"
)

// --- helpers ---

func newTestMCPDeps(t *testing.T) (MCPDeps, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return MCPDeps{
		Store:     store,
		Labour:    catalog.Static(catalog.Records(catalog.FixtureLabour())),
		Tractors:  catalog.Static(catalog.Records(catalog.FixtureTractors())),
		Middlemen: catalog.Static(catalog.Records(catalog.FixtureCoordinators())),
	}, store
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func seedFarmer(t *testing.T, store *storage.Store) storage.User {
	t.Helper()
	u, err := store.CreateUser(storage.User{
		Email:        "mcp-farmer@example.com",
		PasswordHash: "x",
		FirstName:    "Meena",
		LastName:     "Kulkarni",
		UserType:     storage.RoleFarmer,
		Location:     "Pune",
	})
	if err != nil {
		t.Fatalf("seeding farmer: %v", err)
	}
	return u
}

// --- tests ---

func TestMCPTool_PostTask(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	farmer := seedFarmer(t, store)
	handler := mcpPostTask(deps)

	req := makeCallToolRequest("post_task", map[string]interface{}{
		"farmer_id":       float64(farmer.ID),
		"title":           "Sugarcane cutting",
		"location":        "Kolhapur",
		"hourly_rate":     140.0,
		"required_skills": []string{"cutting"},
	})

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}

	tasks, err := store.ListTasksByFarmer(farmer.ID)
	if err != nil {
		t.Fatalf("listing tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Status != storage.TaskOpen {
		t.Errorf("status = %q, want OPEN", tasks[0].Status)
	}
	if tasks[0].HourlyRate != 140 {
		t.Errorf("hourly rate = %v, want 140", tasks[0].HourlyRate)
	}
}

func TestMCPTool_PostTask_RejectsNonFarmer(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	labourer, err := store.CreateUser(storage.User{
		Email:        "mcp-labour@example.com",
		PasswordHash: "x",
		UserType:     storage.RoleLabour,
	})
	if err != nil {
		t.Fatalf("seeding labourer: %v", err)
	}
	handler := mcpPostTask(deps)

	req := makeCallToolRequest("post_task", map[string]interface{}{
		"farmer_id": float64(labourer.ID),
		"title":     "Not allowed",
		"location":  "Pune",
	})

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for non-farmer poster")
	}
}

func TestMCPTool_SearchTasks(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	farmer := seedFarmer(t, store)

	for _, task := range []storage.Task{
		{FarmerID: farmer.ID, Title: "Wheat harvest", Location: "Pune", Status: storage.TaskOpen, HourlyRate: 150, RequiredSkills: []string{"harvesting"}},
		{FarmerID: farmer.ID, Title: "Old job", Location: "Pune", Status: storage.TaskCompleted, HourlyRate: 100},
		{FarmerID: farmer.ID, Title: "Drip repair", Location: "Nashik", Status: storage.TaskOpen, HourlyRate: 90},
	} {
		if _, err := store.CreateTask(task); err != nil {
			t.Fatalf("seeding task: %v", err)
		}
	}

	handler := mcpSearchTasks(deps)

	result, err := handler(context.Background(), makeCallToolRequest("search_tasks", map[string]interface{}{
		"location": "Pune",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp resultsResponse
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	// Completed tasks are excluded by the OPEN default.
	if resp.Count != 1 || resp.Results[0].Name != "Wheat harvest" {
		t.Fatalf("resp = %+v, want only the open Pune task", resp)
	}

	result, err = handler(context.Background(), makeCallToolRequest("search_tasks", map[string]interface{}{
		"min_rate": 100.0,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("min_rate filter: count = %d, want 1", resp.Count)
	}
}

func TestMCPTool_SearchDirectory(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpSearchDirectory(deps.Labour)

	result, err := handler(context.Background(), makeCallToolRequest("search_labour", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp resultsResponse
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("expected fixture labourers in unfiltered search")
	}
	for _, row := range resp.Results {
		if row.Kind != string(catalog.KindLabourer) {
			t.Errorf("kind = %q, want labourer", row.Kind)
		}
	}

	result, err = handler(context.Background(), makeCallToolRequest("search_labour", map[string]interface{}{
		"query": "zzz-nobody",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0 for nonsense query", resp.Count)
	}
}

func TestMCPTool_LatestAnnouncements(t *testing.T) {
	deps, store := newTestMCPDeps(t)

	for _, a := range []storage.Announcement{
		{Title: "Subsidy open", Body: "Apply now", Category: storage.CategoryGovt},
		{Title: "Rain alert", Body: "Heavy rain expected", Category: storage.CategoryWeather},
		{Title: "Mandi prices", Body: "Onion up", Category: storage.CategoryMarket},
	} {
		if _, err := store.CreateAnnouncement(a); err != nil {
			t.Fatalf("seeding announcement: %v", err)
		}
	}

	handler := mcpLatestAnnouncements(deps)

	result, err := handler(context.Background(), makeCallToolRequest("latest_announcements", map[string]interface{}{
		"limit": 2.0,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var anns []storage.Announcement
	if err := json.Unmarshal([]byte(toolText(t, result)), &anns); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(anns) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(anns))
	}

	result, err = handler(context.Background(), makeCallToolRequest("latest_announcements", map[string]interface{}{
		"category": storage.CategoryWeather,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &anns); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(anns) != 1 || anns[0].Title != "Rain alert" {
		t.Fatalf("category filter: got %+v", anns)
	}
}

func TestMCPResource_Announcements(t *testing.T) {
	deps, store := newTestMCPDeps(t)
	if _, err := store.CreateAnnouncement(storage.Announcement{
		Title: "Resource test", Body: "body", Category: storage.CategoryGeneral,
	}); err != nil {
		t.Fatalf("seeding announcement: %v", err)
	}

	handler := mcpResourceAnnouncements(deps)
	contents, err := handler(context.Background(), makeReadResourceRequest("agri://announcements"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource content, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	var anns []storage.Announcement
	if err := json.Unmarshal([]byte(text.Text), &anns); err != nil {
		t.Fatalf("failed to parse resource body: %v", err)
	}
	if len(anns) != 1 || anns[0].Title != "Resource test" {
		t.Fatalf("resource = %+v", anns)
	}
}
