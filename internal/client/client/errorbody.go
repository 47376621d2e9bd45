package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// field is one top-level member of a JSON error body, kept in body order.
type field struct {
	name  string
	value json.RawMessage
}

type errorBody struct {
	text   string // set when the body is a JSON string
	fields []field
	list   []json.RawMessage // set when the body is a JSON array
}

// parseErrorBody decodes b keeping the order of object members. ok is false
// when b is not JSON or is a scalar other than a string.
func parseErrorBody(b []byte) (body errorBody, ok bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return body, false
	}

	switch b[0] {
	case '"':
		if err := json.Unmarshal(b, &body.text); err != nil {
			return body, false
		}
		return body, true
	case '[':
		if err := json.Unmarshal(b, &body.list); err != nil {
			return body, false
		}
		return body, true
	case '{':
	default:
		return body, false
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return body, false
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return body, false
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return body, false
		}
		body.fields = append(body.fields, field{name: name, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return body, false
	}
	return body, true
}

func (e errorBody) get(name string) (json.RawMessage, bool) {
	for _, f := range e.fields {
		if f.name == name {
			return f.value, true
		}
	}
	return nil, false
}

// first returns the first non-empty message among the named fields. A list
// field contributes its first element.
func (e errorBody) first(names ...string) string {
	for _, n := range names {
		raw, ok := e.get(n)
		if !ok {
			continue
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			if len(list) == 0 {
				continue
			}
			raw = list[0]
		}
		if s := stringify(raw); s != "" {
			return s
		}
	}
	return ""
}

// stringify renders a JSON value the way it should read in a message:
// strings unquoted, lists joined with ", ", null as empty.
func stringify(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

func genericMessage(status int) string {
	return fmt.Sprintf("Request failed with status: %d", status)
}

// errorMessage is the message for a failed request: a string body, else the
// detail field, else every field value joined with "; ". Unparsable or
// empty bodies give the generic status message.
func errorMessage(status int, b []byte) string {
	body, ok := parseErrorBody(b)
	if !ok {
		return genericMessage(status)
	}

	var msg string
	switch {
	case body.text != "":
		msg = body.text
	case body.list != nil:
		parts := make([]string, 0, len(body.list))
		for _, item := range body.list {
			parts = append(parts, stringify(item))
		}
		msg = strings.Join(parts, "; ")
	default:
		if raw, ok := body.get("detail"); ok {
			msg = stringify(raw)
		}
		if msg == "" {
			parts := make([]string, 0, len(body.fields))
			for _, f := range body.fields {
				parts = append(parts, stringify(f.value))
			}
			msg = strings.Join(parts, "; ")
		}
	}

	if strings.TrimSpace(msg) == "" {
		return genericMessage(status)
	}
	return msg
}

// registerErrorMessage reports the first field error of a failed
// registration.
func registerErrorMessage(status int, b []byte) string {
	body, ok := parseErrorBody(b)
	if !ok {
		return fmt.Sprintf("Registration failed with status: %d", status)
	}
	if msg := body.first("username", "email", "password", "detail"); msg != "" {
		return msg
	}
	return "Registration failed."
}

func loginErrorMessage(status int, b []byte) string {
	body, ok := parseErrorBody(b)
	if !ok {
		return fmt.Sprintf("Login failed with status: %d", status)
	}
	if msg := body.first("non_field_errors", "detail", "error"); msg != "" {
		return msg
	}
	return "Login failed."
}
