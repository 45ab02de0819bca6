package settings

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestDataDefaults(t *testing.T) {
	d := New()
	if got := d.String("RenderMode"); got != "" {
		t.Errorf("String() on empty store = %q, want empty", got)
	}

	d.SetDefaultString("RenderMode", "RenderModeBlend")
	if got := d.String("RenderMode"); got != "RenderModeBlend" {
		t.Errorf("String() = %q, want default", got)
	}
	if d.Has("RenderMode") {
		t.Error("Has() should be false for default-only key")
	}

	d.SetString("RenderMode", "RenderModeMask")
	if got := d.String("RenderMode"); got != "RenderModeMask" {
		t.Errorf("String() = %q, want user value", got)
	}

	d.Unset("RenderMode")
	if got := d.String("RenderMode"); got != "RenderModeBlend" {
		t.Errorf("String() after Unset = %q, want default", got)
	}
}

func TestFromMapCopies(t *testing.T) {
	m := map[string]string{"a": "1"}
	d := FromMap(m)
	m["a"] = "2"
	if got := d.String("a"); got != "1" {
		t.Errorf("String() = %q, want %q", got, "1")
	}
}

func TestProperties(t *testing.T) {
	ps := NewProperties()
	p := ps.AddList("RenderMode", "Render mode")
	p.AddString("Blend", "RenderModeBlend")
	p.AddString("Mask", "RenderModeMask")

	got := ps.Get("RenderMode")
	if got == nil {
		t.Fatal("Get() returned nil")
	}
	if got.Type != PropertyList {
		t.Errorf("Type = %v, want PropertyList", got.Type)
	}
	if len(got.Items) != 2 || got.Items[0].Value != "RenderModeBlend" || got.Items[1].Value != "RenderModeMask" {
		t.Errorf("Items = %+v", got.Items)
	}
	if ps.Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
	if len(ps.All()) != 1 {
		t.Errorf("All() len = %d, want 1", len(ps.All()))
	}
}

func TestTranslator(t *testing.T) {
	tests := []struct {
		name string
		tr   *Translator
		key  string
		want string
	}{
		{"english", NewTranslator(language.English), TextModeBlend, "Blend"},
		{"japanese", NewTranslator(language.Japanese), TextModeMask, "マスク"},
		{"regional japanese", ParseTranslator("ja-JP"), TextRenderMode, "レンダリングモード"},
		{"unsupported falls back", NewTranslator(language.German), TextModeMask, "Mask"},
		{"garbage falls back", ParseTranslator("!!"), TextFilterName, "Virtual Background Renderer"},
		{"unknown key", NewTranslator(language.English), "NoSuchKey", "NoSuchKey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Text(tt.key); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestCatalogCoversSupported(t *testing.T) {
	for _, tag := range Supported {
		msgs, ok := messages[tag]
		if !ok {
			t.Errorf("no messages for %s", tag)
			continue
		}
		tr := NewTranslator(tag)
		for key, want := range msgs {
			if got := tr.Text(key); got != want {
				t.Errorf("%s: Text(%q) = %q, want %q", tag, key, got, want)
			}
		}
		for key := range messages[language.English] {
			if _, ok := msgs[key]; !ok {
				t.Errorf("%s: missing translation for %q", tag, key)
			}
		}
	}
}

func TestBuildCatalogRejectsMalformedMessage(t *testing.T) {
	table := map[language.Tag]map[string]string{
		language.English: {"Broken": "Hello ${name"},
	}
	_, err := buildCatalog(table)
	if err == nil {
		t.Fatal("buildCatalog() error = nil, want error for unterminated placeholder")
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Errorf("error %q does not name the key", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("mustCatalog() did not panic")
		}
	}()
	mustCatalog(table)
}
