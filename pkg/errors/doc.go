// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidManifest,
//	    "failed to decode manifest document",
//	    decodeErr,
//	    map[string]interface{}{
//	        "path": path,
//	        "document": idx,
//	    },
//	)
package errors
