package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one server-defined row. Only "id" is relied upon; every other
// key is read through the column schema.
type Record map[string]any

// ID returns the record id as an integer, false when missing or not numeric.
func (r Record) ID() (int64, bool) {
	switch v := r["id"].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Text renders the value stored under key, "" when absent or null.
func (r Record) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// ListResponse is one page of search results.
type ListResponse struct {
	Content       []Record `json:"content"`
	Page          int      `json:"page"`
	TotalPages    int      `json:"totalPages"`
	TotalElements int64    `json:"totalElements"`
}

// MutationResult is the body returned by create, update and delete.
type MutationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Created reports the create flag the server embeds in a 200 answer.
func (m MutationResult) Created() bool { return m.Status == "success" }

// Updated reports the update flag the server embeds in a 200 answer.
func (m MutationResult) Updated() bool { return m.Status == "updated" }
