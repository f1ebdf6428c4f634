package jira

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MapWorkItem transforms a Jira DTO into a normalized WorkItem. The second
// return value is false when the issue must be excluded from aggregation
// (no usable estimate or no creation date).
func MapWorkItem(item IssueDTO, primaryField, fallbackField string) (WorkItem, bool) {
	points, ok := resolvePoints(item.Fields, primaryField, fallbackField)
	if !ok || points < 0 {
		return WorkItem{}, false
	}

	createdRaw, ok := decodeString(item.Fields, "created")
	if !ok {
		return WorkItem{}, false
	}
	created, err := ParseTime(createdRaw)
	if err != nil {
		return WorkItem{}, false
	}

	wi := WorkItem{
		Key:     item.Key,
		Points:  points,
		Created: created,
	}

	var status StatusDTO
	if raw, ok := item.Fields["status"]; ok {
		if err := json.Unmarshal(raw, &status); err == nil {
			wi.Status = status.Name
		}
	}

	if resolvedRaw, ok := decodeString(item.Fields, "resolutiondate"); ok {
		if t, err := ParseTime(resolvedRaw); err == nil {
			wi.Resolved = &t
		}
	}

	return wi, true
}

// resolvePoints evaluates the two estimate slots in fixed order: the primary
// story-point field wins; the fallback field is consulted only when the
// primary is missing or null. Both missing means the item carries no estimate.
func resolvePoints(fields map[string]json.RawMessage, primary, fallback string) (float64, bool) {
	if v, ok := decodeNumber(fields, primary); ok {
		return v, true
	}
	if fallback != "" {
		if v, ok := decodeNumber(fields, fallback); ok {
			return v, true
		}
	}
	return 0, false
}

// decodeNumber reads a field as a float, tolerating numbers encoded as
// strings. JSON null and absent keys both report missing.
func decodeNumber(fields map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			return parsed, true
		}
	}

	return 0, false
}

func decodeString(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return "", false
	}
	if str == "" {
		return "", false
	}
	return str, true
}
