package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxPathLength bounds node paths accepted from user input.
const MaxPathLength = 1024

// ValidateNodePath validates a node path supplied by a user (flags, HTTP
// queries, mapping files). It does not judge the path's structure; the path
// resolver tolerates malformed paths. It only rejects input that can never
// address a node.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of MaxPathLength characters
//   - No control characters or null bytes
//   - No leading separator (paths are rooted in a kind or a document id)
func ValidateNodePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > MaxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", MaxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must not start with /")
	}

	return nil
}

// ValidateKind validates a step kind name used to request a template.
// Kinds are identifiers, optionally with dashes ("kaoto-datamapper").
func ValidateKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidInput, "kind cannot be empty")
	}
	if len(kind) > 128 {
		return New(ErrCodeInvalidInput, "kind too long (max 128 characters)")
	}
	for i, r := range kind {
		switch {
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		case (r == '-' || r == '_') && i > 0:
		default:
			return New(ErrCodeInvalidInput, "invalid kind: %q", kind)
		}
	}
	return nil
}

// allowedExtensions lists the file types definitions, documents and
// mappings are read from.
var allowedExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ValidateInputFile validates the name of a definition, document or mapping
// file. Only YAML and JSON files are accepted.
func ValidateInputFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "file name cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "file name contains invalid characters")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported file type %q (want .yaml, .yml or .json)", ext)
	}
	return nil
}
