package i18n

// English is the built-in English table. It is also the fallback for keys
// missing from other tables.
var English = Table{
	KeyStringLengthRange:      "'minLength' cannot be greater than 'maxLength'.",
	KeyNumberMinMax:           "Minimum and maximum values must be consistent.",
	KeyNumberRedundantMinimum: "Both 'exclusiveMinimum' and 'minimum' cannot be set at the same time.",
	KeyNumberRedundantMaximum: "Both 'exclusiveMaximum' and 'maximum' cannot be set at the same time.",
	KeyNumberEnumOutOfRange:   "Enum values must be within the defined range.",
	KeyArrayMinMax:            "'minItems' cannot be greater than 'maxItems'.",
	KeyArrayContainsMinMax:    "'minContains' cannot be greater than 'maxContains'.",
	KeyObjectMinMax:           "'minProperties' cannot be greater than 'maxProperties'.",
	KeyNegativeLength:         "Length values cannot be negative.",
	KeyIntValue:               "Value must be an integer.",
	KeyPositive:               "Value must be positive.",
	KeyUnknownType:            "Unknown type '{type}'.",
	KeySchemaValidation:       "Schema validation error",
	KeyInvalidSyntax:          "Invalid JSON syntax",
	KeyErrorCount:             "{count} validation errors detected",
	KeyPathRoot:               "Root",
	KeyLocationLineAndColumn:  "Line {line}, Col {column}",
	KeyLocationLineOnly:       "Line {line}",
	KeyValid:                  "JSON is valid according to the schema!",
	KeyInferrerInvalidJSON:    "Invalid JSON format. Please check your input.",

	// Issue codes shared with the root package.
	"invalid_type":            "invalid type",
	"invalid_keyword":         "invalid keyword value",
	"duplicate_key":           "duplicate key",
	"parse_error":             "parse error",
	"truncated":               "truncated",
	"limit_exceeded":          "resource limit exceeded",
	"inconsistent_constraint": "inconsistent constraint",
	"instance_invalid":        "instance does not match the schema",
}

// Japanese is the built-in Japanese table.
var Japanese = Table{
	KeyStringLengthRange:      "'minLength' は 'maxLength' より大きくできません。",
	KeyNumberMinMax:           "最小値と最大値が矛盾しています。",
	KeyNumberRedundantMinimum: "'exclusiveMinimum' と 'minimum' は同時に指定できません。",
	KeyNumberRedundantMaximum: "'exclusiveMaximum' と 'maximum' は同時に指定できません。",
	KeyNumberEnumOutOfRange:   "列挙値は定義された範囲内でなければなりません。",
	KeyArrayMinMax:            "'minItems' は 'maxItems' より大きくできません。",
	KeyArrayContainsMinMax:    "'minContains' は 'maxContains' より大きくできません。",
	KeyObjectMinMax:           "'minProperties' は 'maxProperties' より大きくできません。",
	KeyNegativeLength:         "長さに負の値は指定できません。",
	KeyIntValue:               "整数を指定してください。",
	KeyPositive:               "正の値を指定してください。",
	KeyUnknownType:            "不明な型 '{type}' です。",
	KeySchemaValidation:       "スキーマ検証エラー",
	KeyInvalidSyntax:          "JSON の構文が不正です",
	KeyErrorCount:             "{count} 件の検証エラーが見つかりました",
	KeyPathRoot:               "ルート",
	KeyLocationLineAndColumn:  "{line} 行目, {column} 列目",
	KeyLocationLineOnly:       "{line} 行目",
	KeyValid:                  "JSON はスキーマに適合しています。",
	KeyInferrerInvalidJSON:    "JSON の形式が不正です。入力を確認してください。",

	"invalid_type":            "型が不正です",
	"invalid_keyword":         "キーワードの値が不正です",
	"duplicate_key":           "キーが重複しています",
	"parse_error":             "解析エラー",
	"truncated":               "打ち切られました",
	"limit_exceeded":          "リソース上限を超えました",
	"inconsistent_constraint": "制約が矛盾しています",
	"instance_invalid":        "スキーマに適合しません",
}
