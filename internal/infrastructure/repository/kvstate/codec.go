package kvstate

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"

	"github.com/dinkanimations/squadbets/internal/platform/logging"
)

// encode renders v as compact JSON without the encoder's trailing newline.
func encode(v any) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(v); err != nil {
		return "", crerr.Wrap(err, "encode value")
	}
	return string(bytes.TrimRight(buf.B, "\n")), nil
}

// decoder turns stored strings back into records. Records that fail to parse
// or validate are logged and skipped so they never reach the engines.
type decoder struct {
	ctx      context.Context
	validate *validator.Validate
	logger   *logging.Logger
}

func decodeList[T any](d decoder, key, raw string, normalize func(*T)) []T {
	out := make([]T, 0)
	if strings.TrimSpace(raw) == "" {
		return out
	}

	var items []json.RawMessage
	if err := sonic.UnmarshalString(raw, &items); err != nil {
		d.logger.ErrorContext(d.ctx, "discard malformed stored value", "key", key, "error", err)
		return out
	}

	for idx, item := range items {
		var record T
		if err := sonic.Unmarshal(item, &record); err != nil {
			d.logger.WarnContext(d.ctx, "quarantine malformed record", "key", key, "index", idx, "error", err)
			continue
		}
		if normalize != nil {
			normalize(&record)
		}
		if err := d.validate.StructCtx(d.ctx, record); err != nil {
			d.logger.WarnContext(d.ctx, "quarantine invalid record", "key", key, "index", idx, "error", err)
			continue
		}
		out = append(out, record)
	}
	return out
}

func decodeObject[T any](d decoder, key, raw string, fallback T) T {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	var out T
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		d.logger.ErrorContext(d.ctx, "discard malformed stored value", "key", key, "error", err)
		return fallback
	}
	if err := d.validate.StructCtx(d.ctx, out); err != nil {
		d.logger.ErrorContext(d.ctx, "discard invalid stored value", "key", key, "error", err)
		return fallback
	}
	return out
}

// decodeWeek accepts a bare integer or a JSON string holding one.
func decodeWeek(d decoder, raw string) int {
	value := strings.Trim(strings.TrimSpace(raw), `"`)
	if value == "" {
		return 1
	}
	week, err := strconv.Atoi(value)
	if err != nil || week < 1 {
		d.logger.WarnContext(d.ctx, "invalid stored current week, using 1", "value", raw)
		return 1
	}
	return week
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
