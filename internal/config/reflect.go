package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Field describes one settable config option, extracted from struct tags.
type Field struct {
	Key  string // e.g. "api.url"
	Desc string
	Type string // "string" or "int"
	Min  int
	Max  int
}

var fieldCache []Field

// Fields returns all config options in declaration order.
func Fields() []Field {
	if fieldCache != nil {
		return fieldCache
	}

	var fields []Field
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		if section.Type.Kind() != reflect.Struct {
			continue
		}
		for j := 0; j < section.Type.NumField(); j++ {
			f := section.Type.Field(j)
			key := f.Tag.Get("config")
			if key == "" {
				continue
			}
			cf := Field{Key: key, Desc: f.Tag.Get("desc")}
			switch f.Type.Kind() {
			case reflect.Int:
				cf.Type = "int"
			default:
				cf.Type = "string"
			}
			if s := f.Tag.Get("min"); s != "" {
				cf.Min, _ = strconv.Atoi(s)
			}
			if s := f.Tag.Get("max"); s != "" {
				cf.Max, _ = strconv.Atoi(s)
			}
			fields = append(fields, cf)
		}
	}

	fieldCache = fields
	return fields
}

// findField locates a field by key.
func findField(key string) *Field {
	for _, f := range Fields() {
		if f.Key == key {
			return &f
		}
	}
	return nil
}

// navigate finds the struct field for a "section.option" key.
func navigate(c *Config, key string) (reflect.Value, bool) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != parts[0] {
			continue
		}
		section := v.Field(i)
		st := section.Type()
		for j := 0; j < st.NumField(); j++ {
			if st.Field(j).Tag.Get("config") == key {
				return section.Field(j), true
			}
		}
	}
	return reflect.Value{}, false
}

// GetValue returns a config value by key as a string.
func (c *Config) GetValue(key string) (string, bool) {
	fv, ok := navigate(c, key)
	if !ok {
		return "", false
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), true
	case reflect.Int:
		return strconv.FormatInt(fv.Int(), 10), true
	}
	return "", false
}

// SetValue sets a config value by key, validating int ranges from tags.
func (c *Config) SetValue(key, value string) error {
	field := findField(key)
	if field == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}

	fv, ok := navigate(c, key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
		return nil
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		if field.Min != 0 && n < field.Min {
			return fmt.Errorf("value %d is below minimum %d", n, field.Min)
		}
		if field.Max != 0 && n > field.Max {
			return fmt.Errorf("value %d exceeds maximum %d", n, field.Max)
		}
		fv.SetInt(int64(n))
		return nil
	}
	return fmt.Errorf("field not found: %s", key)
}
