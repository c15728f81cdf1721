package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// jsonDate accepts RFC 3339 timestamps and plain calendar dates.
type jsonDate struct {
	time.Time
}

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("must be a date string")
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return errors.New("must be a date (YYYY-MM-DD or RFC 3339)")
}

func (d *jsonDate) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// patchBody is an update body kept as raw values so the handler can tell
// which keys the caller actually sent.
type patchBody map[string]json.RawMessage

func bindPatch(c echo.Context) (patchBody, error) {
	body := patchBody{}
	err := json.NewDecoder(c.Request().Body).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return body, nil
}

func (p patchBody) keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// patchField decodes key when present. Decode failures are collected in ve.
func patchField[T any](p patchBody, key string, ve *domain.ValidationError) *T {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		msg := "has the wrong type"
		var ue *json.UnmarshalTypeError
		if !errors.As(err, &ue) {
			msg = err.Error()
		}
		ve.Add(key, msg)
		return nil
	}
	return v
}
