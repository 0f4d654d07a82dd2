package validators

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

// MaxImageBytes caps uploaded component images.
const MaxImageBytes = 10 << 20

// FormInt parses a required numeric form field.
func FormInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field is required").WithDetails(map[string]any{"field": key})
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// FormOptionalInt parses a numeric form field that may be left blank, as
// the empty select options in the forms are.
func FormOptionalInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// QueryOptionalInt parses a numeric query parameter that may be absent.
func QueryOptionalInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// URLParamInt parses a numeric chi route parameter.
func URLParamInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "identifier must be a positive number")
	}
	return value, nil
}

// FormFile reads an optional multipart file field into memory. A request
// without the field returns nil bytes and no error.
func FormFile(r *http.Request, key string) ([]byte, string, error) {
	file, header, err := r.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	if len(data) > MaxImageBytes {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is too large")
	}
	if len(data) == 0 {
		return nil, "", nil
	}
	return data, header.Filename, nil
}

// SanitizeString trims whitespace and truncates to maxLen runes so a
// multi-byte character is never split at the cap.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		return string([]rune(trimmed)[:maxLen])
	}
	return trimmed
}
