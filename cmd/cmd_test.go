package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"hungie/api"
	"hungie/chat"
	"hungie/render"

	"github.com/go-chi/chi/v5"
)

// newBackend starts a fake cooking backend routed with chi
func newBackend(t *testing.T, setup func(r chi.Router)) string {
	t.Helper()
	r := chi.NewRouter()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// run executes the root command in an isolated home and working directory
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("HUNGIE_API_URL", "")
	t.Setenv("HUNGIE_LOG_LEVEL", "")

	workDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	apiURL, logLevel, metricsAddr = "", "", ""
	plainMode, rawMarkdown = false, false
	recipeContext = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), err
}

func TestAsk(t *testing.T) {
	var got api.SmartSearchRequest
	url := newBackend(t, func(r chi.Router) {
		r.Post("/api/smart-search", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusOK, `{
				"chat_response": "Carbonara is quick!",
				"recipes": [{"id": 12, "name": "Carbonara", "total_time": "PT20M", "servings": 2}],
				"substitutions": {"guanciale": [{"substitute": "bacon", "ratio": "1:1"}]}
			}`)
		})
	})

	out, err := run(t, "ask", "--api-url", url, "quick", "pasta")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got.Message != "quick pasta" {
		t.Errorf("Expected joined message, got %q", got.Message)
	}
	if got.Context != "assistant: "+chat.Greeting {
		t.Errorf("Expected greeting as context, got %q", got.Context)
	}
	for _, want := range []string{"Hungie: Carbonara is quick!", "1. Carbonara", "20 min", "For guanciale:", "bacon (1:1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestAskFallsBackOnBackendError(t *testing.T) {
	url := newBackend(t, func(r chi.Router) {
		r.Post("/api/smart-search", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":"down"}`)
		})
	})

	out, err := run(t, "ask", "--api-url", url, "pasta")
	if err != nil {
		t.Fatalf("Expected the fallback rather than an error, got %v", err)
	}
	if !strings.Contains(out, chat.Fallback) {
		t.Errorf("Expected fallback message, got %q", out)
	}
}

func TestRecipe(t *testing.T) {
	url := newBackend(t, func(r chi.Router) {
		r.Get("/api/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") != "12" {
				writeJSON(w, http.StatusOK, `{"data": null}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"data": {"id": 12, "name": "Carbonara", "total_time": "PT20M"}}`)
		})
	})

	out, err := run(t, "recipe", "--raw", "--api-url", url, "12")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "# Carbonara") || !strings.Contains(out, "20 min") {
		t.Errorf("Unexpected recipe output:\n%s", out)
	}

	out, err = run(t, "recipe", "--raw", "--api-url", url, "99")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, render.NotFound) {
		t.Errorf("Expected not-found message, got %q", out)
	}
}

func TestRecipeTransportError(t *testing.T) {
	url := newBackend(t, func(r chi.Router) {
		r.Get("/api/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"error":"missing"}`)
		})
	})

	out, err := run(t, "recipe", "--raw", "--api-url", url, "5")
	var terr *api.TransportError
	if !errors.As(err, &terr) || terr.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected transport error with status 404, got %v", err)
	}
	if !strings.Contains(out, render.NotFound) {
		t.Errorf("Expected not-found message, got %q", out)
	}
}

func TestSearchAndCategories(t *testing.T) {
	var query string
	url := newBackend(t, func(r chi.Router) {
		r.Get("/api/search", func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("q")
			writeJSON(w, http.StatusOK, `{"recipes":[{"id":1,"name":"Mac & Cheese"}]}`)
		})
		r.Get("/api/categories", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `["dinner","dessert"]`)
		})
	})

	out, err := run(t, "search", "--api-url", url, "mac", "&", "cheese")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if query != "mac & cheese" {
		t.Errorf("Expected escaped query to round-trip, got %q", query)
	}
	if !strings.Contains(out, `"name": "Mac & Cheese"`) {
		t.Errorf("Expected indented JSON, got:\n%s", out)
	}

	out, err = run(t, "categories", "--api-url", url)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, `"dessert"`) {
		t.Errorf("Unexpected categories output:\n%s", out)
	}
}

func TestSubstitute(t *testing.T) {
	var single api.SubstitutionRequest
	var bulk api.BulkSubstitutionRequest
	browsed := false
	url := newBackend(t, func(r chi.Router) {
		r.Post("/api/substitutions", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&single)
			writeJSON(w, http.StatusOK, `{"substitutes":[{"substitute":"flax egg"}]}`)
		})
		r.Post("/api/substitutions/bulk", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&bulk)
			writeJSON(w, http.StatusOK, `{}`)
		})
		r.Get("/api/substitutions/browse", func(w http.ResponseWriter, r *http.Request) {
			browsed = true
			writeJSON(w, http.StatusOK, `{"eggs":[]}`)
		})
	})

	out, err := run(t, "substitute", "--api-url", url, "--context", "cookies", "eggs")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if single.Ingredient != "eggs" || single.RecipeContext != "cookies" {
		t.Errorf("Unexpected request %+v", single)
	}
	if !strings.Contains(out, "flax egg") {
		t.Errorf("Unexpected output:\n%s", out)
	}

	if _, err := run(t, "substitute", "bulk", "--api-url", url, "eggs", "butter"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(bulk.Ingredients) != 2 || bulk.Ingredients[1] != "butter" {
		t.Errorf("Unexpected bulk request %+v", bulk)
	}

	if _, err := run(t, "substitute", "browse", "--api-url", url); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !browsed {
		t.Error("Expected browse endpoint to be called")
	}
}

func TestConfigSetAndGet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	originalDir, _ := os.Getwd()
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	execute := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return out.String(), err
	}

	if out, err := execute("config", "set", "context_window", "6"); err != nil || !strings.Contains(out, "Set context_window = 6") {
		t.Fatalf("Unexpected set result %q, %v", out, err)
	}
	out, err := execute("config", "get", "context_window")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "context_window = 6" {
		t.Errorf("Unexpected get output %q", out)
	}

	if _, err := execute("config", "set", "context_window", "zero"); err == nil {
		t.Error("Expected invalid value to fail")
	}
}

type fakeSearcher struct {
	err error
}

func (f fakeSearcher) SmartSearch(ctx context.Context, message, history string) (*api.SmartSearchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.SmartSearchResponse{ChatResponse: "You said " + message}, nil
}

func TestRunPlain(t *testing.T) {
	conv := chat.NewConversation(fakeSearcher{})
	in := strings.NewReader("pasta\n\n/reset\n/quit\nnever sent\n")
	var out bytes.Buffer

	if err := runPlain(context.Background(), in, &out, conv); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Hungie: You said pasta") {
		t.Errorf("Expected reply in output:\n%s", text)
	}
	if strings.Count(text, "Hello there!") != 2 {
		t.Errorf("Expected greeting at start and after reset:\n%s", text)
	}
	if strings.Contains(text, "never sent") {
		t.Error("Expected input after /quit to be ignored")
	}
	if conv.State().Len() != 1 {
		t.Errorf("Expected reset log, got %d messages", conv.State().Len())
	}
}

func TestRunPlainFallback(t *testing.T) {
	conv := chat.NewConversation(fakeSearcher{err: errors.New("offline")})
	var out bytes.Buffer

	if err := runPlain(context.Background(), strings.NewReader("pasta\n"), &out, conv); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), chat.Fallback) {
		t.Errorf("Expected fallback in output:\n%s", out.String())
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, json.RawMessage(`{"a":[1,2]}`)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n" {
		t.Errorf("Unexpected indentation %q", buf.String())
	}

	buf.Reset()
	if err := printJSON(&buf, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "not json\n" {
		t.Errorf("Expected raw passthrough, got %q", buf.String())
	}
}
