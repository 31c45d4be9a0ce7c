package sink

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Credentials are the OAuth1a user-context keys for the posting account.
type Credentials struct {
	APIKey            string
	APIKeySecret      string
	AccessToken       string
	AccessTokenSecret string
}

// signer produces OAuth1a HMAC-SHA1 Authorization headers. nonce and now are
// injectable so tests can produce stable signatures.
type signer struct {
	creds Credentials
	nonce func() string
	now   func() time.Time
}

func newSigner(creds Credentials) *signer {
	return &signer{
		creds: creds,
		nonce: randomNonce,
		now:   time.Now,
	}
}

// authHeader builds the Authorization header for a request. extra carries
// the request's query or form parameters, which OAuth1a folds into the
// signature base string.
func (s *signer) authHeader(method, rawURL string, extra url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse request URL: %w", err)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.creds.APIKey,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_token":            s.creds.AccessToken,
		"oauth_version":          "1.0",
	}

	// Collect every parameter that participates in the signature.
	params := map[string][]string{}
	for k, v := range oauthParams {
		params[k] = append(params[k], v)
	}
	for k, vs := range u.Query() {
		params[k] = append(params[k], vs...)
	}
	for k, vs := range extra {
		params[k] = append(params[k], vs...)
	}

	baseURL := u.Scheme + "://" + u.Host + u.EscapedPath()
	base := method + "&" + percentEncode(baseURL) + "&" + percentEncode(normalize(params))
	key := percentEncode(s.creds.APIKeySecret) + "&" + percentEncode(s.creds.AccessTokenSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	oauthParams["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	keys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", percentEncode(k), percentEncode(oauthParams[k])))
	}
	return "OAuth " + strings.Join(pairs, ", "), nil
}

// normalize sorts and percent-encodes the parameter set per RFC 5849 §3.4.1.3.2.
func normalize(params map[string][]string) string {
	encoded := make([][2]string, 0, len(params))
	for k, vs := range params {
		for _, v := range vs {
			encoded = append(encoded, [2]string{percentEncode(k), percentEncode(v)})
		}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i][0] != encoded[j][0] {
			return encoded[i][0] < encoded[j][0]
		}
		return encoded[i][1] < encoded[j][1]
	})

	pairs := make([]string, 0, len(encoded))
	for _, kv := range encoded {
		pairs = append(pairs, kv[0]+"="+kv[1])
	}
	return strings.Join(pairs, "&")
}

// percentEncode applies the RFC 3986 unreserved-character encoding OAuth1a
// requires; url.QueryEscape is not strict enough (it emits '+').
func percentEncode(s string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func randomNonce() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
