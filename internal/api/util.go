package api

import (
	"encoding/json"
)

// gormKeys renames the untagged gorm.Model fields so responses stay
// snake_case. An empty target drops the key.
var gormKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "",
}

func normalizeKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeKeys(val)
		}
		for from, to := range gormKeys {
			val, ok := vv[from]
			if !ok {
				continue
			}
			delete(vv, from)
			if to != "" {
				vv[to] = val
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeKeys(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps round-trips v through JSON and rewrites the
// gorm.Model keys of every nested object.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeKeys(out), nil
}
