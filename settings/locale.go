package settings

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translatable keys.
const (
	TextFilterName = "VirtualBackGroundRenderFilter"
	TextRenderMode = "RenderMode"
	TextModeBlend  = "RenderModeBlend"
	TextModeMask   = "RenderModeMask"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		TextFilterName: "Virtual Background Renderer",
		TextRenderMode: "Render mode",
		TextModeBlend:  "Blend",
		TextModeMask:   "Mask",
	},
	language.Japanese: {
		TextFilterName: "仮想背景レンダラー",
		TextRenderMode: "レンダリングモード",
		TextModeBlend:  "ブレンド",
		TextModeMask:   "マスク",
	},
}

// Supported lists the languages with built-in translations.
var Supported = []language.Tag{language.English, language.Japanese}

var defaultCatalog = mustCatalog(messages)

// buildCatalog compiles a translation table. It fails on the first message
// the catalog cannot compile, such as an unterminated ${...} placeholder.
func buildCatalog(table map[language.Tag]map[string]string) (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range table {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("settings: catalog %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

func mustCatalog(table map[language.Tag]map[string]string) catalog.Catalog {
	c, err := buildCatalog(table)
	if err != nil {
		panic(err)
	}
	return c
}

// Translator looks up display text for translatable keys.
type Translator struct {
	printer *message.Printer
}

// NewTranslator creates a translator for the closest supported language.
func NewTranslator(tag language.Tag) *Translator {
	matched, _, _ := language.NewMatcher(Supported).Match(tag)
	base, _ := matched.Base()
	return &Translator{
		printer: message.NewPrinter(language.Make(base.String()), message.Catalog(defaultCatalog)),
	}
}

// ParseTranslator creates a translator from a BCP 47 string such as
// "ja-JP". Unparseable input selects English.
func ParseTranslator(s string) *Translator {
	tag, err := language.Parse(s)
	if err != nil {
		tag = language.English
	}
	return NewTranslator(tag)
}

// Text returns the display text for key, or key itself if unknown.
func (t *Translator) Text(key string) string {
	return t.printer.Sprintf(message.Key(key, key))
}
