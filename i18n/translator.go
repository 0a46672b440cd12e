package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "actual").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"integer_option":          `The "{field}" option is expected to be an integer, but it was {actual}.`,
		"positive_integer_option": `The "{field}" option is expected to be a positive integer, but it was {actual}.`,
		"boolean_option":          `The "{field}" option is expected to be a boolean value, but it was {actual}.`,
		"speed_option":            `The "{field}" option is expected to be a number between {min} and {max}, but it was {actual}.`,
		"invalid_input":           `Options are expected to be an object, but they were {actual}.`,
		"parse_error":             "Options could not be parsed.",
		"duplicate_key":           "Options repeat the key at {path}.",
	},
	"ja": {
		"integer_option":          `"{field}" オプションには整数が必要ですが、{actual} が指定されました。`,
		"positive_integer_option": `"{field}" オプションには正の整数が必要ですが、{actual} が指定されました。`,
		"boolean_option":          `"{field}" オプションには真偽値が必要ですが、{actual} が指定されました。`,
		"speed_option":            `"{field}" オプションには {min} から {max} の数値が必要ですが、{actual} が指定されました。`,
		"invalid_input":           "オプションはオブジェクトである必要がありますが、{actual} が指定されました。",
		"parse_error":             "オプションを解析できません。",
		"duplicate_key":           "オプションのキー {path} が重複しています。",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand substitutes {key} placeholders; unknown placeholders are left as-is.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). It may be called while messages are being rendered.
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
