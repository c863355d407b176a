package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "pos", "limit" or "key"); templates reference them as {{name}}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"array.base":                     "{{key}} must be an array",
		"array.sparse":                   "{{key}} must not be a sparse array",
		"array.excludes":                 "{{key}} at position {{pos}} contains an excluded value",
		"array.excludesSingle":           "single value of {{key}} contains an excluded value",
		"array.ordered":                  "{{key}} at position {{pos}} fails because {{reason}}",
		"array.orderedLength":            "{{key}} at position {{pos}} fails because array must contain at most {{limit}} items",
		"array.includesOne":              "{{key}} at position {{pos}} fails because {{reason}}",
		"array.includesOneSingle":        "single value of {{key}} fails because {{reason}}",
		"array.includes":                 "{{key}} at position {{pos}} does not match any of the allowed types",
		"array.includesSingle":           "single value of {{key}} does not match any of the allowed types",
		"array.includesRequiredBoth":     "{{key}} does not contain {{knownMisses}} and {{unknownMisses}} other required value(s)",
		"array.includesRequiredKnowns":   "{{key}} does not contain {{knownMisses}}",
		"array.includesRequiredUnknowns": "{{key}} does not contain {{unknownMisses}} required value(s)",
		"array.min":                      "{{key}} must contain at least {{limit}} items",
		"array.max":                      "{{key}} must contain less than or equal to {{limit}} items",
		"array.length":                   "{{key}} must contain {{limit}} items",
		"array.unique":                   "{{key}} position {{pos}} contains a duplicate value",
		"any.required":                   "{{key}} is required",
		"any.unknown":                    "{{key}} is not allowed",
		"any.custom":                     "{{key}} fails rule {{rule}}: {{cause}}",
		"number.base":                    "{{key}} must be a number",
		"string.base":                    "{{key}} must be a string",
		"boolean.base":                   "{{key}} must be a boolean",
		"object.base":                    "{{key}} must be an object",
		"object.allowUnknown":            "{{key}} is not allowed",
	},
	"ja": {
		"array.base":                     "{{key}} は配列である必要があります",
		"array.sparse":                   "{{key}} は疎な配列であってはなりません",
		"array.excludes":                 "{{key}} の位置 {{pos}} に除外された値が含まれています",
		"array.excludesSingle":           "{{key}} の単一値に除外された値が含まれています",
		"array.ordered":                  "{{key}} の位置 {{pos}} が不正です: {{reason}}",
		"array.orderedLength":            "{{key}} の位置 {{pos}} が不正です: 要素数は最大 {{limit}} 件です",
		"array.includesOne":              "{{key}} の位置 {{pos}} が不正です: {{reason}}",
		"array.includesOneSingle":        "{{key}} の単一値が不正です: {{reason}}",
		"array.includes":                 "{{key}} の位置 {{pos}} は許可された型のいずれにも一致しません",
		"array.includesSingle":           "{{key}} の単一値は許可された型のいずれにも一致しません",
		"array.includesRequiredBoth":     "{{key}} に {{knownMisses}} とその他 {{unknownMisses}} 件の必須値が含まれていません",
		"array.includesRequiredKnowns":   "{{key}} に {{knownMisses}} が含まれていません",
		"array.includesRequiredUnknowns": "{{key}} に {{unknownMisses}} 件の必須値が含まれていません",
		"array.min":                      "{{key}} は {{limit}} 件以上の要素が必要です",
		"array.max":                      "{{key}} の要素は {{limit}} 件以下である必要があります",
		"array.length":                   "{{key}} は {{limit}} 件の要素が必要です",
		"array.unique":                   "{{key}} の位置 {{pos}} に重複した値があります",
		"any.required":                   "{{key}} は必須です",
		"any.unknown":                    "{{key}} は許可されていません",
		"any.custom":                     "{{key}} はルール {{rule}} を満たしません: {{cause}}",
		"number.base":                    "{{key}} は数値である必要があります",
		"string.base":                    "{{key}} は文字列である必要があります",
		"boolean.base":                   "{{key}} は真偽値である必要があります",
		"object.base":                    "{{key}} はオブジェクトである必要があります",
		"object.allowUnknown":            "{{key}} は許可されていません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return render(tmpl, data)
}

// render substitutes {{name}} placeholders. Unknown placeholders are left as is.
func render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
