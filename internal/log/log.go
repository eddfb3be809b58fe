// Package log writes one JSON object per line through the standard logger,
// so LOG_FILE tee-ing set up in main applies to it as well.
package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"harvestdesk/internal/domain"
)

type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	Action string         `json:"action,omitempty"`
	Status int            `json:"status,omitempty"`
	Kind   string         `json:"kind,omitempty"`
	Entity string         `json:"entity,omitempty"`
	ID     string         `json:"id,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// write accepts a nil ctx for events raised outside a request.
func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
		if de, ok := domain.AsError(err); ok {
			e.Kind = de.Kind.Error()
			e.Entity = de.Entity
			e.ID = de.ID
		}
	}
	b, jerr := json.Marshal(e)
	if jerr != nil {
		e.Fields = nil
		b, _ = json.Marshal(e)
	}
	log.Println(string(b))
}

// Info records lifecycle events such as startup.
func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }

// Audit records a completed mutation of the tree.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}

// Warn records a request the core refused: a conflict, a bad reference, an
// illegal transition or invalid input.
func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("warn", c, action, err, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
