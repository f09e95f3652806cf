package trivia

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"trivia-quiz-service/internal/domain"
)

const (
	DefaultAmount = 10
	// MaxAmount is the provider's per-request cap.
	MaxAmount = 50
	anyValue  = "any"
)

// providerEncodings maps our encoding names to the provider's encoder names.
var providerEncodings = map[domain.Encoding]string{
	domain.EncodingLegacy:  "urlLegacy",
	domain.EncodingURL3986: "url3986",
	domain.EncodingBase64:  "base64",
}

// NormalizeOptions applies defaults and rejects options the provider cannot serve.
func NormalizeOptions(opts domain.QueryOptions) (domain.QueryOptions, error) {
	if opts.Amount == 0 {
		opts.Amount = DefaultAmount
	}
	if opts.Amount < 0 || opts.Amount > MaxAmount {
		return opts, errors.Wrapf(domain.ErrInvalidOptions, "amount must be between 1 and %d, got %d", MaxAmount, opts.Amount)
	}
	if !opts.Encoding.Valid() {
		return opts, errors.Wrapf(domain.ErrInvalidOptions, "unknown encoding %q", opts.Encoding)
	}
	if opts.Encoding == "" {
		opts.Encoding = domain.EncodingDefault
	}
	return opts, nil
}

// BuildQuery renders the api.php query string. Parameters keep the provider's documented
// order (amount, category, difficulty, type, encode); "any" and "default" are omitted.
func BuildQuery(opts domain.QueryOptions) string {
	amount := opts.Amount
	if amount <= 0 {
		amount = DefaultAmount
	}

	var b strings.Builder
	b.WriteString("amount=")
	b.WriteString(strconv.Itoa(amount))

	add := func(key, value string) {
		if value == "" || value == anyValue {
			return
		}
		b.WriteByte('&')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	add("category", opts.Category)
	add("difficulty", opts.Difficulty)
	add("type", opts.Type)
	if enc, ok := providerEncodings[opts.Encoding]; ok {
		add("encode", enc)
	}
	return b.String()
}
