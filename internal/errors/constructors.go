package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

func ContentInvalid(reason string) *BuildError {
	return New(CategoryContent, SeverityFatal, reason)
}

func ContentLoadError(path string, cause error) *BuildError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content table could not be loaded").
		WithContext("path", path)
}

// Build pipeline errors

func BundleFailed(entry string, cause error) *BuildError {
	return Wrap(cause, CategoryBundle, SeverityFatal, "bundling failed").
		WithContext("entry", entry)
}

func TemplateError(name string, cause error) *BuildError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template processing failed").
		WithContext("template", name)
}

func MissingTokens(name string, tokens []string) *BuildError {
	return New(CategoryTemplate, SeverityFatal, "required template tokens are not supplied").
		WithContext("template", name).
		WithContext("tokens", tokens)
}

func FileSystemError(operation, path string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

// Verification errors

func BrokenReferences(count int, first string) *BuildError {
	return New(CategoryValidation, SeverityFatal, "generated pages reference missing files").
		WithContext("count", count).
		WithContext("first", first)
}
