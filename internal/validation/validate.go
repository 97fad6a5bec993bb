package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/internal/operations/fop"
	"github.com/forksen/forksen-qiniu/qntypes"
)

const (
	// MaxBucketNameLength is the longest accepted bucket name.
	MaxBucketNameLength = 63

	// MaxObjectKeyLength is the longest accepted object key in bytes.
	MaxObjectKeyLength = 750

	// MaxListLimit is the largest page the listing API returns.
	MaxListLimit = 1000

	// DateLayout is the layout of CDN statistics dates.
	DateLayout = "2006-01-02"
)

// ValidateBucketName validates that a bucket name is non-empty and well formed.
// Returns ErrInvalidBucketName if the bucket name is invalid.
func ValidateBucketName(bucket string) error {
	if bucket == "" {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithMessage("bucket name cannot be empty")
	}

	if len(bucket) > MaxBucketNameLength {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage(fmt.Sprintf("bucket name cannot exceed %d characters", MaxBucketNameLength))
	}

	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
				WithBucket(bucket).
				WithMessage("bucket name can only contain letters, numbers, hyphens, and underscores")
		}
	}

	return nil
}

// ValidateObjectKey validates that an object key is non-empty and free of control characters.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
			WithMessage("object key cannot be empty")
	}

	if len(key) > MaxObjectKeyLength {
		return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
			WithKey(key).
			WithMessage(fmt.Sprintf("object key cannot exceed %d bytes", MaxObjectKeyLength))
	}

	if hasControlCharacters(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot contain control characters")
	}

	return nil
}

// ValidateFop validates a fop command or a ";"-joined list of them.
func ValidateFop(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return errors.NewError("validateFop", errors.ErrInvalidFop).
			WithMessage("fop cannot be empty")
	}

	if hasControlCharacters(cmd) {
		return errors.NewError("validateFop", errors.ErrInvalidFop).
			WithMessage("fop cannot contain control characters")
	}

	return nil
}

// ValidateFops validates a sequence of fop commands. The sequence must be
// non-empty and every element must be a valid fop.
func ValidateFops(fops []string) error {
	if len(fops) == 0 {
		return errors.NewError("validateFop", errors.ErrInvalidFop).
			WithMessage("fop list cannot be empty")
	}
	for i, cmd := range fops {
		if err := ValidateFop(cmd); err != nil {
			return errors.NewError("validateFop", err).
				WithMessage(fmt.Sprintf("fop %d", i))
		}
	}
	return nil
}

// ValidatePersistentID validates a persistent operation id.
func ValidatePersistentID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewError("validatePersistentID", errors.ErrInvalidInput).
			WithMessage("persistent id cannot be empty")
	}
	if hasControlCharacters(id) || strings.ContainsAny(id, "&# ") {
		return errors.NewError("validatePersistentID", errors.ErrInvalidInput).
			WithMessage("persistent id contains characters that cannot be sent unescaped")
	}
	return nil
}

// ValidateNotifyURL validates an optional notification URL.
func ValidateNotifyURL(notifyURL string) error {
	if notifyURL == "" {
		return nil
	}
	if !IsValidURL(notifyURL) {
		return errors.NewError("validateNotifyURL", errors.ErrInvalidURL).
			WithMessage("notify url must be an absolute http or https url")
	}
	return nil
}

// ValidateListLimit validates a listing page size. Zero selects the default.
func ValidateListLimit(limit int) error {
	if limit < 0 || limit > MaxListLimit {
		return errors.NewError("validateListLimit", errors.ErrInvalidInput).
			WithMessage(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	return nil
}

// ValidateBandwidthRequest validates a CDN bandwidth query.
func ValidateBandwidthRequest(req qntypes.BandwidthRequest) error {
	start, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return errors.NewError("validateBandwidthRequest", errors.ErrInvalidInput).
			WithMessage("start date must be formatted as YYYY-MM-DD")
	}

	end, err := time.Parse(DateLayout, req.EndDate)
	if err != nil {
		return errors.NewError("validateBandwidthRequest", errors.ErrInvalidInput).
			WithMessage("end date must be formatted as YYYY-MM-DD")
	}

	if end.Before(start) {
		return errors.NewError("validateBandwidthRequest", errors.ErrInvalidInput).
			WithMessage("end date cannot be before start date")
	}

	switch req.Granularity {
	case qntypes.Granularity5Min, qntypes.GranularityHour, qntypes.GranularityDay:
	default:
		return errors.NewError("validateBandwidthRequest", errors.ErrInvalidInput).
			WithMessage("granularity must be one of: 5min, hour, day")
	}

	if len(req.Domains) == 0 {
		return errors.NewError("validateBandwidthRequest", errors.ErrInvalidInput).
			WithMessage("at least one domain is required")
	}
	for _, d := range req.Domains {
		if strings.TrimSpace(d) == "" || strings.Contains(d, ";") {
			return errors.NewError("validateBandwidthRequest", errors.ErrInvalidInput).
				WithMessage(fmt.Sprintf("invalid domain %q", d))
		}
	}

	return nil
}

// IsValidURL reports whether s is an absolute http or https URL with a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// Classify resolves a dfop input into a remote URL or a local path.
func Classify(uri string) fop.Source {
	if IsValidURL(uri) {
		return fop.URLSource{URL: uri}
	}
	return fop.PathSource{Path: uri}
}

// isValidBucketChar checks if a character is valid in a bucket name
func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') ||
		(char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		char == '-' || char == '_'
}

// hasControlCharacters checks for control characters in s
func hasControlCharacters(s string) bool {
	for _, char := range s {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}
