package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IntArray stores integer lists as JSON. A bare number is read as a one-element list.
type IntArray []int

func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *IntArray) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.IntArray: Scan on nil pointer")
	}
	if value == nil {
		*a = IntArray{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.IntArray: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*a = IntArray{}
		return nil
	}

	var arr []int
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*a = arr
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("models.IntArray: %w", err)
	}
	*a = IntArray{n}
	return nil
}

// Contains reports whether id is present.
func (a IntArray) Contains(id int) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}
