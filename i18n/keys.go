package i18n

// Message keys. Templates may reference {count}, {line}, {column} and {type}.
const (
	KeyStringLengthRange      = "stringValidationErrorLengthRange"
	KeyNumberMinMax           = "numberValidationErrorMinMax"
	KeyNumberRedundantMinimum = "numberValidationErrorBothExclusiveAndInclusiveMin"
	KeyNumberRedundantMaximum = "numberValidationErrorBothExclusiveAndInclusiveMax"
	KeyNumberEnumOutOfRange   = "numberValidationErrorEnumOutOfRange"
	KeyArrayMinMax            = "arrayValidationErrorMinMax"
	KeyArrayContainsMinMax    = "arrayValidationErrorContainsMinMax"
	KeyObjectMinMax           = "objectValidationErrorMinMax"
	KeyNegativeLength         = "typeValidationErrorNegativeLength"
	KeyIntValue               = "typeValidationErrorIntValue"
	KeyPositive               = "typeValidationErrorPositive"
	KeyUnknownType            = "typeValidationErrorUnknownType"
	KeySchemaValidation       = "validatorErrorSchemaValidation"
	KeyInvalidSyntax          = "validatorErrorInvalidSyntax"
	KeyErrorCount             = "validatorErrorCount"
	KeyPathRoot               = "validatorErrorPathRoot"
	KeyLocationLineAndColumn  = "validatorErrorLocationLineAndColumn"
	KeyLocationLineOnly       = "validatorErrorLocationLineOnly"
	KeyValid                  = "validatorValid"
	KeyInferrerInvalidJSON    = "inferrerErrorInvalidJson"
)
