// Package i18n localizes issue codes for display.
package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for issue codes. data carries
// optional placeholders such as "field" and "path".
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"unknown_field":      "unknown field {field}",
		"duplicate_field":    "field {field} is set more than once",
		"invalid_number":     "invalid integer for {field}",
		"invalid_bytes":      "invalid base64 for {field}",
		"unknown_enum_value": "unknown enum value for {field}",
		"type_mismatch":      "wrong JSON type for {field}",
		"invalid_timestamp":  "invalid RFC 3339 timestamp for {field}",
		"parse_error":        "parse error",
		"truncated":          "input exceeds the size limit",
		"duplicate_key":      "duplicate key",
	},
	"ja": {
		"unknown_field":      "未知のフィールドです: {field}",
		"duplicate_field":    "フィールドが重複しています: {field}",
		"invalid_number":     "整数が不正です: {field}",
		"invalid_bytes":      "base64 が不正です: {field}",
		"unknown_enum_value": "未知の列挙値です: {field}",
		"type_mismatch":      "JSON の型が不正です: {field}",
		"invalid_timestamp":  "RFC 3339 タイムスタンプが不正です: {field}",
		"parse_error":        "解析エラー",
		"truncated":          "入力がサイズ上限を超えています",
		"duplicate_key":      "キーが重複しています",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if data["field"] == "" {
		data = withDefault(data, "field", "(root)")
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

func withDefault(data map[string]string, key, v string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, val := range data {
		out[k] = val
	}
	out[key] = v
	return out
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the built-in dictionaries.
func Languages() []string { return []string{"en", "ja"} }

// SetLanguage switches the built-in Translator language ("en"/"ja").
// Unknown languages fall back to English.
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
