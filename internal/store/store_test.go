package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/valpere/honyaku/internal/settings"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "honyaku.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()
}

func TestStore_SetGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, settings.KeyGeminiAPIKey, "gk"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, settings.KeyIncludePageContent, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := s.Get(ctx, settings.KeyGeminiAPIKey)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if v != "gk" {
		t.Errorf("expected gk, got %v", v)
	}

	v, ok, err = s.Get(ctx, settings.KeyIncludePageContent)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if v != true {
		t.Errorf("expected bool true to round-trip, got %#v", v)
	}
}

func TestStore_Get_Missing(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestStore_Set_Overwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, settings.KeyTranslationEngine, "gemini")
	_ = s.Set(ctx, settings.KeyTranslationEngine, "chatgpt")

	v, _, _ := s.Get(ctx, settings.KeyTranslationEngine)
	if v != "chatgpt" {
		t.Errorf("expected overwrite, got %v", v)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestStore_Lookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SetMany(ctx, map[string]any{
		settings.KeyTranslationEngine: "chatgpt",
		settings.KeyChatGPTAPIKey:     "sk",
		"unrelated":                   "x",
	})
	if err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	values, err := s.Lookup(ctx, []string{settings.KeyTranslationEngine, settings.KeyChatGPTAPIKey, settings.KeySystemPrompt})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %v", values)
	}
	if values[settings.KeyChatGPTAPIKey] != "sk" {
		t.Errorf("expected sk, got %v", values[settings.KeyChatGPTAPIKey])
	}
	if _, ok := values["unrelated"]; ok {
		t.Error("did not expect unrequested key")
	}
}

func TestStore_Lookup_NoKeys(t *testing.T) {
	s := newTestStore(t)

	values, err := s.Lookup(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty result, got %v", values)
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, settings.KeySystemPrompt, "p")
	if err := s.Delete(ctx, settings.KeySystemPrompt); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, settings.KeySystemPrompt); ok {
		t.Error("expected key to be deleted")
	}
	if err := s.Delete(ctx, settings.KeySystemPrompt); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestStore_List_Ordered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "b", 1)
	_ = s.Set(ctx, "a", "x")

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "a" || entries[1].Key != "b" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[1].Value != float64(1) {
		t.Errorf("expected JSON number, got %#v", entries[1].Value)
	}
}

func TestStore_AsSettingsSource(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, settings.KeyTranslationEngine, "chatgpt_azure")
	_ = s.Set(ctx, settings.KeyDoNotTranslateProperNouns, true)

	resolved, err := settings.NewProvider(s).Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Engine != settings.EngineChatGPTAzure {
		t.Errorf("expected chatgpt_azure, got %q", resolved.Engine)
	}
	if !resolved.DoNotTranslateProperNouns {
		t.Error("expected flag from store")
	}
	if resolved.AzureAPIVersion != settings.DefaultAzureAPIVersion {
		t.Errorf("expected default api version, got %q", resolved.AzureAPIVersion)
	}
}
