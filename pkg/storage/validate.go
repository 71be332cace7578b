package storage

import "strings"

const (
	// MaxKeySize is the maximum key length in bytes.
	MaxKeySize = 1024
	// MaxValueSize is the maximum value length in bytes (1 MiB).
	MaxValueSize = 1 << 20

	// ReservedKeyPrefix marks keys reserved for internal use.
	ReservedKeyPrefix = "__zephyrite_"
)

// ValidateKey checks a key against the standard rules: non-empty, at most
// MaxKeySize bytes, no leading/trailing spaces, no control characters or NUL,
// no reserved prefix, and no ".." sequence (path-traversal guard). Non-ASCII
// Unicode is permitted.
func ValidateKey(key string) error {
	if key == "" {
		return NewInvalidKey("key cannot be empty")
	}
	if len(key) > MaxKeySize {
		return NewInvalidKey("key too long (max 1024 bytes)")
	}
	if strings.HasPrefix(key, " ") || strings.HasSuffix(key, " ") {
		return NewInvalidKey("key cannot start or end with spaces")
	}
	if strings.ContainsRune(key, 0) {
		return NewInvalidKey("key cannot contain null bytes")
	}
	if strings.ContainsAny(key, "\n\r") {
		return NewInvalidKey("key cannot contain line breaks")
	}
	for _, r := range key {
		if r < 0x20 || r == 0x7f {
			return NewInvalidKey("key cannot contain control characters")
		}
	}
	if strings.HasPrefix(key, ReservedKeyPrefix) {
		return NewInvalidKey("keys cannot start with '__zephyrite_' (reserved prefix)")
	}
	if strings.Contains(key, "..") {
		return NewInvalidKey("key cannot contain '..' (security risk)")
	}
	return nil
}

// ValidateKeyStrict runs ValidateKey plus stricter checks: path separators
// and dots can be forbidden, and doubled special characters ("::", "--",
// "__") are always rejected.
func ValidateKeyStrict(key string, allowSlashes, allowDots bool) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !allowSlashes && strings.ContainsAny(key, `/\`) {
		return NewInvalidKey("key cannot contain path separators")
	}
	if !allowDots && strings.Contains(key, ".") {
		return NewInvalidKey("key cannot contain dots")
	}
	if strings.Contains(key, "::") || strings.Contains(key, "--") || strings.Contains(key, "__") {
		return NewInvalidKey("key cannot contain consecutive special characters")
	}
	return nil
}

// ValidateValue checks a value. Any UTF-8 content is accepted up to
// MaxValueSize bytes; control characters, NUL and newlines are all legal.
func ValidateValue(value string) error {
	if len(value) > MaxValueSize {
		return NewInvalidValue("value too large (max 1MB)")
	}
	return nil
}
