package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/stahnma/gh-search/internal/config"
	ghub "github.com/stahnma/gh-search/internal/github"
	"github.com/stahnma/gh-search/internal/tui"
)

// mockSearcher implements ghub.Searcher for testing commands.
type mockSearcher struct {
	searchFn func(ctx context.Context, filters ghub.Filters, credential, query string) (*ghub.Result, error)
}

func (m *mockSearcher) Search(ctx context.Context, filters ghub.Filters, credential, query string) (*ghub.Result, error) {
	return m.searchFn(ctx, filters, credential, query)
}

// searchCall is what the last Search invocation received.
type searchCall struct {
	filters    ghub.Filters
	credential string
	query      string
}

func recordingSearcher(res *ghub.Result, err error) (*mockSearcher, *searchCall) {
	got := &searchCall{}
	return &mockSearcher{
		searchFn: func(_ context.Context, filters ghub.Filters, credential, query string) (*ghub.Result, error) {
			*got = searchCall{filters: filters, credential: credential, query: query}
			return res, err
		},
	}, got
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func defaultResult() *ghub.Result {
	return &ghub.Result{
		TotalCount: 2500,
		Items: []ghub.Repo{
			{ID: 1, Name: "react", FullName: "facebook/react", Stars: 1500, Language: "JavaScript", UpdatedAt: testNow.Add(-2 * time.Hour)},
			{ID: 2, Name: "preact", FullName: "preactjs/preact", Stars: 37000, UpdatedAt: testNow.Add(-72 * time.Hour)},
		},
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.KeyToken, config.KeyDebug, config.KeyLogFile, config.KeyDebounce, config.KeyPerPage} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func newTestApp(t *testing.T, s ghub.Searcher) *App {
	t.Helper()
	clearEnv(t)
	app := NewApp(config.New(), "abc1234", "")
	app.Searcher = s
	app.isTerminal = func() bool { return true }
	app.runUI = func(context.Context, tui.Controller, string) error { return nil }
	app.now = func() time.Time { return testNow }
	return app
}

func execute(app *App, args ...string) (string, error) {
	cmd := app.NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// --- Version ---

func TestVersionCommand(t *testing.T) {
	out, err := execute(newTestApp(t, nil), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "commit: abc1234\n") {
		t.Errorf("expected SHA in output, got:\n%s", out)
	}
	if !strings.Contains(out, "built with "+runtime.Version()) {
		t.Errorf("expected Go version in output, got:\n%s", out)
	}
	if strings.Contains(out, "modified") {
		t.Error("expected no modified flag when GitDirty is empty")
	}
}

func TestVersionCommand_Dirty(t *testing.T) {
	app := newTestApp(t, nil)
	app.GitDirty = "true"

	out, err := execute(app, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "commit: abc1234 (modified)") {
		t.Errorf("expected modified flag, got:\n%s", out)
	}
}

func TestVersionCommand_BuildInfo(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Path: "github.com/stahnma/gh-search", Version: "v1.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}

	app := newTestApp(t, nil)
	app.GitSHA = ""

	out, err := execute(app, "version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"gh-search v1.4.0\n", "commit: 0123456789abcdef (modified)\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}

	app.GitSHA = "abc1234"
	out, err = execute(app, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "commit: abc1234\n") {
		t.Errorf("linker SHA should win over build info, got:\n%s", out)
	}
}

// --- Search ---

func TestSearchCommand(t *testing.T) {
	s, got := recordingSearcher(defaultResult(), nil)

	out, err := execute(newTestApp(t, s), "search", "react", "hooks", "--language", "javascript", "--sort", "stars")
	if err != nil {
		t.Fatal(err)
	}

	if got.query != "react hooks language:javascript" {
		t.Errorf("query = %q", got.query)
	}
	if got.filters.Sort != ghub.SortStars || got.filters.Order != ghub.OrderDesc {
		t.Errorf("sort/order = %s/%s", got.filters.Sort, got.filters.Order)
	}
	if got.filters.Page != 1 || got.filters.PerPage != 20 {
		t.Errorf("page/per_page = %d/%d", got.filters.Page, got.filters.PerPage)
	}
	if got.credential != "" {
		t.Errorf("expected no credential, got %q", got.credential)
	}

	for _, want := range []string{
		"2,500 repositories found (showing first 1,000 results)",
		"facebook/react",
		"1.5K",
		"JavaScript",
		"2h ago",
		"preactjs/preact",
		"37.0K",
		"3d ago",
		"Page 1 of 50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestSearchCommand_JSON(t *testing.T) {
	s, _ := recordingSearcher(defaultResult(), nil)

	out, err := execute(newTestApp(t, s), "search", "react", "--json", "--page", "3")
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Query      string `json:"query"`
		Page       int    `json:"page"`
		TotalPages int    `json:"total_pages"`
		TotalCount int    `json:"total_count"`
		Items      []struct {
			FullName string `json:"full_name"`
			Stars    int    `json:"stargazers_count"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Query != "react" || doc.Page != 3 || doc.TotalPages != 50 || doc.TotalCount != 2500 {
		t.Errorf("unexpected document header: %+v", doc)
	}
	if len(doc.Items) != 2 || doc.Items[0].FullName != "facebook/react" || doc.Items[0].Stars != 1500 {
		t.Errorf("unexpected items: %+v", doc.Items)
	}
}

func TestSearchCommand_Token(t *testing.T) {
	s, got := recordingSearcher(defaultResult(), nil)
	app := newTestApp(t, s)
	t.Setenv("GITHUB_TOKEN", "from-env")

	if _, err := execute(app, "search", "go"); err != nil {
		t.Fatal(err)
	}
	if got.credential != "from-env" {
		t.Errorf("credential = %q, want from-env", got.credential)
	}

	if _, err := execute(app, "search", "go", "--token", "from-flag"); err != nil {
		t.Fatal(err)
	}
	if got.credential != "from-flag" {
		t.Errorf("credential = %q, want from-flag", got.credential)
	}
}

func TestSearchCommand_PerPageFromEnvironment(t *testing.T) {
	s, got := recordingSearcher(defaultResult(), nil)
	app := newTestApp(t, s)
	t.Setenv("GH_SEARCH_PER_PAGE", "50")

	if _, err := execute(app, "search", "go"); err != nil {
		t.Fatal(err)
	}
	if got.filters.PerPage != 50 {
		t.Errorf("per page = %d, want 50", got.filters.PerPage)
	}

	if _, err := execute(app, "search", "go", "--per-page", "10"); err != nil {
		t.Fatal(err)
	}
	if got.filters.PerPage != 10 {
		t.Errorf("per page = %d, want 10", got.filters.PerPage)
	}
}

func TestSearchCommand_LanguageOnly(t *testing.T) {
	s, got := recordingSearcher(defaultResult(), nil)

	if _, err := execute(newTestApp(t, s), "search", "-l", "rust"); err != nil {
		t.Fatal(err)
	}
	if got.query != " language:rust" {
		t.Errorf("query = %q", got.query)
	}
}

func TestSearchCommand_Empty(t *testing.T) {
	s, _ := recordingSearcher(&ghub.Result{Items: []ghub.Repo{}}, nil)

	out, err := execute(newTestApp(t, s), "search", "zzzz-nothing")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `No repositories found for "zzzz-nothing"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSearchCommand_NoQuery(t *testing.T) {
	called := false
	s := &mockSearcher{searchFn: func(context.Context, ghub.Filters, string, string) (*ghub.Result, error) {
		called = true
		return nil, nil
	}}

	_, err := execute(newTestApp(t, s), "search", "  ")
	if !errors.Is(err, errNoQuery) {
		t.Errorf("expected errNoQuery, got %v", err)
	}
	if called {
		t.Error("searcher must not be called without a query")
	}
}

func TestSearchCommand_InvalidFilters(t *testing.T) {
	for _, args := range [][]string{
		{"search", "go", "--sort", "popularity"},
		{"search", "go", "--order", "sideways"},
		{"search", "go", "--per-page", "25"},
		{"search", "go", "--page", "0"},
	} {
		s, _ := recordingSearcher(defaultResult(), nil)
		_, err := execute(newTestApp(t, s), args...)
		if !errors.Is(err, ghub.ErrInvalidFilter) {
			t.Errorf("%v: expected ErrInvalidFilter, got %v", args, err)
		}
	}
}

func TestSearchCommand_RateLimited(t *testing.T) {
	apiErr := &ghub.APIError{StatusCode: 403, Message: "API rate limit exceeded"}
	s, _ := recordingSearcher(nil, apiErr)

	_, err := execute(newTestApp(t, s), "search", "go")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !ghub.IsRateLimited(err) {
		t.Errorf("expected wrapped rate limit error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "searching repositories: ") {
		t.Errorf("unexpected error text %q", err.Error())
	}
}

// --- Interactive ---

func TestRootCommand_NotATerminal(t *testing.T) {
	app := newTestApp(t, nil)
	app.isTerminal = func() bool { return false }

	_, err := execute(app)
	if !errors.Is(err, errNotTerminal) {
		t.Errorf("expected errNotTerminal, got %v", err)
	}
}

func TestRootCommand_RunsUI(t *testing.T) {
	s, _ := recordingSearcher(defaultResult(), nil)
	app := newTestApp(t, s)
	t.Setenv("GH_SEARCH_PER_PAGE", "30")

	var gotToken string
	var gotPerPage int
	app.runUI = func(_ context.Context, ctrl tui.Controller, token string) error {
		gotToken = token
		gotPerPage = ctrl.State().Filters.PerPage
		return nil
	}

	if _, err := execute(app, "--token", "ghp_abc", "--debounce", "250ms"); err != nil {
		t.Fatal(err)
	}
	if gotToken != "ghp_abc" {
		t.Errorf("token = %q", gotToken)
	}
	if gotPerPage != 30 {
		t.Errorf("per page = %d, want 30", gotPerPage)
	}
	if app.Config.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %s", app.Config.Debounce)
	}
}

func TestRootCommand_DebugLogFile(t *testing.T) {
	app := newTestApp(t, &mockSearcher{})
	logFile := filepath.Join(t.TempDir(), "search.log")
	t.Setenv("GH_SEARCH_LOG_FILE", logFile)

	if _, err := execute(app, "--debug"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "starting interactive search") {
		t.Errorf("expected debug log, got:\n%s", data)
	}
}

func TestRootCommand_BadConfiguration(t *testing.T) {
	app := newTestApp(t, nil)
	t.Setenv("GH_SEARCH_DEBOUNCE", "soon")

	_, err := execute(app, "version")
	if err == nil || !strings.Contains(err.Error(), "loading configuration") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	if _, err := execute(newTestApp(t, nil), "react"); err == nil {
		t.Error("expected an error for a bare positional argument")
	}
}
