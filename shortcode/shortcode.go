// Package shortcode generates the random identifiers handed out for
// shortened URLs.
package shortcode

import (
	"math/rand/v2"

	"github.com/mattheath/base62"
)

// Length is the number of characters in every generated code.
const Length = 6

// codeSpace is 62^Length, the number of representable codes.
const codeSpace = 62 * 62 * 62 * 62 * 62 * 62

var encoding = base62.NewStdEncoding().Option(base62.Padding(Length))

// Generate returns a random code of exactly Length characters from the
// base62 alphabet. Codes are not checked against existing mappings, so
// duplicates are possible.
func Generate() string {
	return encoding.EncodeInt64(rand.Int64N(codeSpace))
}
