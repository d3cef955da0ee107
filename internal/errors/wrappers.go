package errors

import "fmt"

// Common error constructors used throughout the tool

// NewSyntaxError reports malformed annotation text
func NewSyntaxError(message string, loc SourceLocation, hint string) *BaseError {
	return New(SyntaxErrorCode, message).
		WithLocation(loc).
		WithSuggestion(hint)
}

// NewValidationError reports an annotation option whose value does not fit its schema
func NewValidationError(option, expected, actual string, loc SourceLocation, hint string) *BaseError {
	message := fmt.Sprintf("option '%s' validation failed: expected %s, got %s", option, expected, actual)
	return New(ValidationErrorCode, message).
		WithLocation(loc).
		WithContext("option", option).
		WithSuggestion(hint)
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapOutputError wraps errors raised while rendering or writing the document
func WrapOutputError(format, target string, cause error) *BaseError {
	message := fmt.Sprintf("failed to write %s output to '%s'", format, target)
	return Wrap(OutputErrorCode, message, cause).
		WithContext("format", format).
		WithContext("target", target)
}
