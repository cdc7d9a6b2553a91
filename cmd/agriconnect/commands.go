package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agriconnect/agriconnect/internal/config"
	"github.com/agriconnect/agriconnect/internal/session"
)

// resultRow mirrors the server's filtered-result shape.
type resultRow struct {
	ID          int64    `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

type resultsResponse struct {
	View    string      `json:"view"`
	Count   int         `json:"count"`
	Results []resultRow `json:"results"`
}

func printResults(resp resultsResponse) {
	if resp.Count == 0 {
		fmt.Println("No results found (0 matches).")
		return
	}
	fmt.Printf("%d result(s):\n", resp.Count)
	for _, r := range resp.Results {
		line := fmt.Sprintf("%s  %s", colorize(colorCyan, fmt.Sprintf("#%d", r.ID)), colorize(colorBold, r.Name))
		if r.Location != "" {
			line += "  @ " + r.Location
		}
		if r.Category != "" {
			line += "  [" + r.Category + "]"
		}
		fmt.Println(line)
		if len(r.Tags) > 0 {
			fmt.Printf("    tags: %s\n", strings.Join(r.Tags, ", "))
		}
		if r.Description != "" {
			fmt.Printf("    %s\n", r.Description)
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- login / logout / register ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("--email and --password are required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/users/login", map[string]string{
			"email":    email,
			"password": password,
		})
		if err != nil {
			printError("Unable to reach authentication server.")
			return errSilent
		}

		var result struct {
			Status string `json:"status"`
			Token  string `json:"token"`
			User   struct {
				ID        int64  `json:"id"`
				FirstName string `json:"firstName"`
				LastName  string `json:"lastName"`
				Email     string `json:"email"`
				UserType  string `json:"userType"`
			} `json:"user"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			printError("Login failed: %v", err)
			return errSilent
		}

		st := session.State{
			Token:     result.Token,
			UserID:    result.User.ID,
			Name:      strings.TrimSpace(result.User.FirstName + " " + result.User.LastName),
			Email:     result.User.Email,
			UserType:  result.User.UserType,
			ServerURL: client.baseURL,
		}
		if err := client.sessions.Set(st); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		printSuccess("Logged in as %s (%s)", st.Name, st.UserType)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.NewStore().Clear(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		printSuccess("Logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{}
		for flag, key := range map[string]string{
			"email":      "email",
			"password":   "password",
			"first-name": "firstName",
			"last-name":  "lastName",
			"phone":      "phone",
			"type":       "userType",
			"location":   "location",
			"bio":        "bio",
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				body[key] = v
			}
		}
		if skills, _ := cmd.Flags().GetString("skills"); skills != "" {
			body["skills"] = splitTrim(skills)
		}
		if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
			body["hourlyRate"] = rate
		}
		if years, _ := cmd.Flags().GetInt("experience"); years > 0 {
			body["experienceYears"] = years
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/api/users/register", body)
		if err != nil {
			return err
		}

		var user struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		}
		if err := decodeJSON(resp, &user); err != nil {
			return err
		}
		printSuccess("Registered %s (user id %d). Now run: agriconnect login", user.Email, user.ID)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (min 6 characters)")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("phone", "", "phone number")
	registerCmd.Flags().String("type", "", "account type: FARMER, LABOUR or ADMIN")
	registerCmd.Flags().String("location", "", "village / district")
	registerCmd.Flags().String("bio", "", "short profile text")
	registerCmd.Flags().String("skills", "", "comma-separated skills")
	registerCmd.Flags().Float64("rate", 0, "hourly rate")
	registerCmd.Flags().Int("experience", 0, "years of experience")
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// --- directory search (tasks, labour, tractors, middlemen) ---

// addSearchFlags registers the filter dimensions every directory page
// shares; individual pages route them to the engine's single filter.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "free-text search")
	cmd.Flags().String("location", "", "location filter")
	cmd.Flags().String("skill", "", "skill / service / commodity tag")
	cmd.Flags().String("min-rate", "", "minimum rate or fare")
	cmd.Flags().String("max-rate", "", "maximum rate or fare")
	cmd.Flags().String("max-distance", "", "maximum distance in km")
	cmd.Flags().String("min-rating", "", "minimum rating")
	cmd.Flags().String("min-hours", "", "minimum estimated hours")
	cmd.Flags().String("sort", "", "sort key: distance, fare or rating")
	cmd.Flags().String("view", "", "view mode: grid or table")
}

func searchQuery(cmd *cobra.Command) url.Values {
	q := url.Values{}
	for flag, param := range map[string]string{
		"query":        "q",
		"location":     "location",
		"skill":        "skill",
		"min-rate":     "minRate",
		"max-rate":     "maxRate",
		"max-distance": "maxDistance",
		"min-rating":   "minRating",
		"min-hours":    "minHours",
		"sort":         "sort",
		"view":         "view",
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			q.Set(param, v)
		}
	}
	return q
}

func runSearch(cmd *cobra.Command, path string, extra url.Values) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	q := searchQuery(cmd)
	for k, vals := range extra {
		for _, v := range vals {
			q.Set(k, v)
		}
	}
	target := path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	resp, err := client.get(cmd.Context(), target)
	if err != nil {
		return err
	}
	var results resultsResponse
	if err := decodeJSON(resp, &results); err != nil {
		return err
	}
	printResults(results)
	return nil
}

var labourCmd = &cobra.Command{
	Use:   "labour",
	Short: "Search the labour directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, "/api/labour", nil)
	},
}

var tractorsCmd = &cobra.Command{
	Use:   "tractors",
	Short: "Search tractor and equipment vendors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, "/api/tractors", nil)
	},
}

var middlemenCmd = &cobra.Command{
	Use:   "middlemen",
	Short: "Search procurement coordinators",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, "/api/middlemen", nil)
	},
}

func init() {
	addSearchFlags(labourCmd)
	addSearchFlags(tractorsCmd)
	addSearchFlags(middlemenCmd)
}

// --- tasks ---

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Browse and manage farm tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks through the search engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		extra := url.Values{}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			extra.Set("status", status)
		}
		if taskType, _ := cmd.Flags().GetString("type"); taskType != "" {
			extra.Set("type", taskType)
		}
		return runSearch(cmd, "/api/tasks", extra)
	},
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single task as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/api/tasks/"+args[0])
		if err != nil {
			return err
		}
		var task any
		if err := decodeJSON(resp, &task); err != nil {
			return err
		}
		return printJSON(task)
	},
}

var tasksMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List tasks you posted",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := session.NewStore().Get()
		if err != nil {
			return fmt.Errorf("not logged in, run: agriconnect login")
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/tasks/farmer/%d", st.UserID))
		if err != nil {
			return err
		}
		var tasks []struct {
			ID       int64   `json:"id"`
			Title    string  `json:"title"`
			Location string  `json:"location"`
			Status   string  `json:"status"`
			Rate     float64 `json:"hourlyRate"`
		}
		if err := decodeJSON(resp, &tasks); err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks posted yet.")
			return nil
		}
		for _, t := range tasks {
			fmt.Printf("%s  %s  @ %s  [%s]  %.0f/hr\n",
				colorize(colorCyan, fmt.Sprintf("#%d", t.ID)), t.Title, t.Location, t.Status, t.Rate)
		}
		return nil
	},
}

var tasksPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new task",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		location, _ := cmd.Flags().GetString("location")
		if title == "" || location == "" {
			return fmt.Errorf("--title and --location are required")
		}

		body := map[string]any{
			"title":    title,
			"location": location,
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			body["description"] = desc
		}
		if taskType, _ := cmd.Flags().GetString("type"); taskType != "" {
			body["taskType"] = strings.ToUpper(taskType)
		}
		if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
			body["hourlyRate"] = rate
		}
		if hours, _ := cmd.Flags().GetFloat64("hours"); hours > 0 {
			body["estimatedHours"] = hours
		}
		if skills, _ := cmd.Flags().GetString("skills"); skills != "" {
			body["requiredSkills"] = splitTrim(skills)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/api/tasks", body)
		if err != nil {
			return err
		}
		var task struct {
			ID int64 `json:"id"`
		}
		if err := decodeJSON(resp, &task); err != nil {
			return err
		}
		printSuccess("Posted task #%d", task.ID)
		return nil
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task you posted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		// Fetch, overlay the changed fields, send the whole record back.
		resp, err := client.get(cmd.Context(), "/api/tasks/"+args[0])
		if err != nil {
			return err
		}
		var task map[string]any
		if err := decodeJSON(resp, &task); err != nil {
			return err
		}

		if title, _ := cmd.Flags().GetString("title"); title != "" {
			task["title"] = title
		}
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			task["description"] = desc
		}
		if location, _ := cmd.Flags().GetString("location"); location != "" {
			task["location"] = location
		}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			task["status"] = strings.ToUpper(status)
		}
		if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
			task["hourlyRate"] = rate
		}

		resp, err = client.put(cmd.Context(), "/api/tasks/"+args[0], task)
		if err != nil {
			return err
		}
		var updated struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		}
		if err := decodeJSON(resp, &updated); err != nil {
			return err
		}
		printSuccess("Updated task #%d (%s)", updated.ID, updated.Status)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task you posted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/api/tasks/"+args[0])
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		printSuccess("Deleted task #%s", args[0])
		return nil
	},
}

func init() {
	addSearchFlags(tasksListCmd)
	tasksListCmd.Flags().String("status", "", "status filter: OPEN, IN_PROGRESS, COMPLETED, CANCELLED")
	tasksListCmd.Flags().String("type", "", "task type filter")

	tasksPostCmd.Flags().String("title", "", "task title")
	tasksPostCmd.Flags().String("description", "", "what the work involves")
	tasksPostCmd.Flags().String("location", "", "where the work happens")
	tasksPostCmd.Flags().String("type", "", "task type, e.g. HARVESTING")
	tasksPostCmd.Flags().Float64("rate", 0, "hourly rate offered")
	tasksPostCmd.Flags().Float64("hours", 0, "estimated hours")
	tasksPostCmd.Flags().String("skills", "", "comma-separated required skills")

	tasksUpdateCmd.Flags().String("title", "", "new title")
	tasksUpdateCmd.Flags().String("description", "", "new description")
	tasksUpdateCmd.Flags().String("location", "", "new location")
	tasksUpdateCmd.Flags().String("status", "", "new status")
	tasksUpdateCmd.Flags().Float64("rate", 0, "new hourly rate")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksShowCmd)
	tasksCmd.AddCommand(tasksMineCmd)
	tasksCmd.AddCommand(tasksPostCmd)
	tasksCmd.AddCommand(tasksUpdateCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
}

// --- announcements ---

var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "Browse and publish announcements",
}

var announcementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		extra := url.Values{}
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			extra.Set("category", strings.ToUpper(category))
		}
		return runSearch(cmd, "/api/announcements", extra)
	},
}

var announcementsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish an announcement",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		body, _ := cmd.Flags().GetString("body")
		if title == "" || body == "" {
			return fmt.Errorf("--title and --body are required")
		}
		category, _ := cmd.Flags().GetString("category")
		location, _ := cmd.Flags().GetString("location")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/api/announcements", map[string]any{
			"title":    title,
			"body":     body,
			"category": strings.ToUpper(category),
			"location": location,
		})
		if err != nil {
			return err
		}
		var created struct {
			ID int64 `json:"id"`
		}
		if err := decodeJSON(resp, &created); err != nil {
			return err
		}
		printSuccess("Published announcement #%d", created.ID)
		return nil
	},
}

var announcementsIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Queue an announcement extracted from text, a URL or a PDF",
	Long: `Queue an announcement extracted from text, a URL or a PDF.

Examples:
  agriconnect announcements ingest --title "Mandi circular" --text "Onion at 1800/quintal"
  agriconnect announcements ingest --title "Subsidy notice" --url https://example.gov/notice.html
  agriconnect announcements ingest --title "Rainfall bulletin" --pdf ./bulletin.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		text, _ := cmd.Flags().GetString("text")
		pageURL, _ := cmd.Flags().GetString("url")
		pdf, _ := cmd.Flags().GetString("pdf")

		if title == "" {
			return fmt.Errorf("--title is required")
		}
		if text == "" && pageURL == "" && pdf == "" {
			return fmt.Errorf("one of --text, --url or --pdf is required")
		}

		body := map[string]any{"title": title}
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			body["category"] = strings.ToUpper(category)
		}
		if location, _ := cmd.Flags().GetString("location"); location != "" {
			body["location"] = location
		}
		switch {
		case text != "":
			body["source"] = "text"
			body["content"] = text
		case pageURL != "":
			body["source"] = "url"
			body["url"] = pageURL
		case pdf != "":
			body["source"] = "pdf"
			body["path"] = pdf
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/api/announcements/ingest", body)
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		printSuccess("Queued ingest job %s", result["id"])
		return nil
	},
}

func init() {
	addSearchFlags(announcementsListCmd)
	announcementsListCmd.Flags().String("category", "", "category filter: GOVT, MARKET, WEATHER, GENERAL")

	announcementsPostCmd.Flags().String("title", "", "announcement title")
	announcementsPostCmd.Flags().String("body", "", "announcement text")
	announcementsPostCmd.Flags().String("category", "GENERAL", "category")
	announcementsPostCmd.Flags().String("location", "", "affected location")

	announcementsIngestCmd.Flags().String("title", "", "announcement title")
	announcementsIngestCmd.Flags().String("text", "", "raw text to publish")
	announcementsIngestCmd.Flags().String("url", "", "web page to extract")
	announcementsIngestCmd.Flags().String("pdf", "", "PDF file on the server to extract")
	announcementsIngestCmd.Flags().String("category", "", "category")
	announcementsIngestCmd.Flags().String("location", "", "affected location")

	announcementsCmd.AddCommand(announcementsListCmd)
	announcementsCmd.AddCommand(announcementsPostCmd)
	announcementsCmd.AddCommand(announcementsIngestCmd)
}

// --- news / weather ---

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show agriculture headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/api/news")
		if err != nil {
			return err
		}
		var items []struct {
			Title   string `json:"title"`
			Summary string `json:"summary"`
			Source  string `json:"source"`
		}
		if err := decodeJSON(resp, &items); err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No news available.")
			return nil
		}
		for _, item := range items {
			fmt.Println(colorize(colorBold, item.Title))
			if item.Summary != "" {
				fmt.Printf("  %s\n", item.Summary)
			}
			if item.Source != "" {
				fmt.Printf("  — %s\n", item.Source)
			}
		}
		return nil
	},
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show current conditions for a region",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		path := "/api/weather"
		if region, _ := cmd.Flags().GetString("region"); region != "" {
			path += "?region=" + url.QueryEscape(region)
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}
		var w struct {
			Region    string  `json:"region"`
			TempC     float64 `json:"tempC"`
			Condition string  `json:"condition"`
			Humidity  int     `json:"humidity"`
			WindKph   float64 `json:"windKph"`
		}
		if err := decodeJSON(resp, &w); err != nil {
			return err
		}
		fmt.Printf("%s: %.0f°C, %s, humidity %d%%, wind %.0f km/h\n",
			colorize(colorBold, w.Region), w.TempC, w.Condition, w.Humidity, w.WindKph)
		return nil
	},
}

func init() {
	weatherCmd.Flags().String("region", "", "region to report (default: server region)")
}

// --- AI assist ---

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask the agricultural advisor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/api/ai/chat", map[string]string{
			"message": strings.Join(args, " "),
		})
		if err != nil {
			return err
		}
		var result struct {
			Reply string `json:"reply"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		fmt.Println(result.Reply)
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show matches for your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := session.NewStore().Get()
		if err != nil {
			return fmt.Errorf("not logged in, run: agriconnect login")
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/ai/recommendations/%d", st.UserID))
		if err != nil {
			return err
		}
		var recs []struct {
			Kind   string  `json:"kind"`
			ID     int64   `json:"id"`
			Title  string  `json:"title"`
			Score  float64 `json:"score"`
			Reason string  `json:"reason"`
		}
		if err := decodeJSON(resp, &recs); err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No matches found yet.")
			return nil
		}
		for _, r := range recs {
			fmt.Printf("%s %s %s (%.0f%% — %s)\n",
				colorize(colorCyan, fmt.Sprintf("#%d", r.ID)), r.Kind,
				colorize(colorBold, r.Title), r.Score*100, r.Reason)
		}
		return nil
	},
}

// --- notifications ---

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Manage your notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), "/api/notifications")
		if err != nil {
			return err
		}
		var notes []struct {
			ID      int64  `json:"id"`
			Message string `json:"message"`
			Read    bool   `json:"read"`
		}
		if err := decodeJSON(resp, &notes); err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notifications.")
			return nil
		}
		for _, n := range notes {
			marker := colorize(colorYellow, "●")
			if n.Read {
				marker = " "
			}
			fmt.Printf("%s %s  %s\n", marker, colorize(colorCyan, fmt.Sprintf("#%d", n.ID)), n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.put(cmd.Context(), "/api/notifications/"+args[0]+"/read", nil)
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		printSuccess("Marked #%s read", args[0])
		return nil
	},
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.delete(cmd.Context(), "/api/notifications/"+args[0])
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		printSuccess("Deleted #%s", args[0])
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := session.NewStore().Get()
		if err != nil {
			return fmt.Errorf("not logged in, run: agriconnect login")
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/users/%d", st.UserID))
		if err != nil {
			return err
		}
		var profile any
		if err := decodeJSON(resp, &profile); err != nil {
			return err
		}
		return printJSON(profile)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := session.NewStore().Get()
		if err != nil {
			return fmt.Errorf("not logged in, run: agriconnect login")
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/users/%d", st.UserID))
		if err != nil {
			return err
		}
		var profile map[string]any
		if err := decodeJSON(resp, &profile); err != nil {
			return err
		}

		if bio, _ := cmd.Flags().GetString("bio"); bio != "" {
			profile["bio"] = bio
		}
		if location, _ := cmd.Flags().GetString("location"); location != "" {
			profile["location"] = location
		}
		if skills, _ := cmd.Flags().GetString("skills"); skills != "" {
			profile["skills"] = splitTrim(skills)
		}
		if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
			profile["hourlyRate"] = rate
		}
		if availability, _ := cmd.Flags().GetString("availability"); availability != "" {
			profile["availabilityStatus"] = strings.ToUpper(availability)
		}

		resp, err = client.put(cmd.Context(), fmt.Sprintf("/api/users/%d/profile", st.UserID), profile)
		if err != nil {
			return err
		}
		var updated map[string]any
		if err := decodeJSON(resp, &updated); err != nil {
			return err
		}
		printSuccess("Profile updated")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("bio", "", "short profile text")
	profileUpdateCmd.Flags().String("location", "", "village / district")
	profileUpdateCmd.Flags().String("skills", "", "comma-separated skills")
	profileUpdateCmd.Flags().Float64("rate", 0, "hourly rate")
	profileUpdateCmd.Flags().String("availability", "", "AVAILABLE, BUSY or UNAVAILABLE")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.SetKey(key, value); err != nil {
			return err
		}
		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
