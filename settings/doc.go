// Package settings holds filter settings and the property description a
// host shows to users.
//
// [Data] is a flat string store with per-key defaults. [Properties]
// describes the editable settings; its display labels are localized
// through a [Translator] backed by golang.org/x/text message catalogs.
package settings
