package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// maxDetailLen bounds error details taken from non-JSON bodies.
const maxDetailLen = 300

// Error is a non-success response from the API.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// newError builds an Error from a failed response. The JSON "detail" member
// is used verbatim when present; FastAPI validation errors (a list of
// objects) are joined by their "msg". HTML error pages from proxies are
// reduced to their text. fallback is used when the body says nothing.
func newError(resp *http.Response, fallback string) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	detail := detailFromBody(resp.Header.Get("Content-Type"), body)
	if detail == "" {
		detail = fallback
	}
	return &Error{Status: resp.StatusCode, Detail: detail}
}

func detailFromBody(contentType string, body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		return detailText(parsed.Detail)
	}

	if strings.Contains(contentType, "html") || bytes.HasPrefix(body, []byte("<")) {
		return htmlText(body)
	}
	return truncate(string(body))
}

func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return truncate(string(raw))
}

func htmlText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	doc.Find("script, style, noscript").Remove()
	return truncate(strings.Join(strings.Fields(doc.Find("body").Text()), " "))
}

// truncate cuts s to maxDetailLen runes.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxDetailLen {
		return s
	}
	return string([]rune(s)[:maxDetailLen]) + "..."
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

func statusOK(code int) bool {
	return code >= 200 && code < 300
}

func unexpected(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
