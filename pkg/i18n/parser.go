package i18n

import (
	"bufio"
	"bytes"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// Supported translation file extensions, in load priority order.
const (
	ExtJSON = "json"
	ExtLang = "lang"
	ExtSPL  = "spl"
)

// loadOrder is the order in which Load probes for files.
var loadOrder = []string{ExtJSON, ExtLang, ExtSPL}

// discoverable are the extensions that make a language available.
var discoverable = []string{ExtJSON, ExtLang}

// Parser turns the content of one translation file into flat key/value
// pairs.
type Parser interface {
	Parse(content []byte) (map[string]string, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(content []byte) (map[string]string, error)

func (f ParserFunc) Parse(content []byte) (map[string]string, error) {
	return f(content)
}

// ParserFor returns the parser for a file extension, with or without the
// leading dot.
func ParserFor(ext string) (Parser, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case ExtJSON:
		return ParserFunc(ParseJSON), nil
	case ExtLang:
		return ParserFunc(ParseLang), nil
	case ExtSPL:
		return ParserFunc(ParseSPL), nil
	default:
		return nil, errors.Join(ErrUnsupportedExtension, errors.New(ext))
	}
}

// ParseJSON flattens a JSON object into dot-separated keys. Scalars are
// stored as their string form and arrays as raw JSON. The root must be an
// object.
func ParseJSON(content []byte) (map[string]string, error) {
	if !gjson.ValidBytes(content) {
		return nil, ErrFailedToParseJSON
	}
	root := gjson.ParseBytes(content)
	if !root.IsObject() {
		return nil, errors.Join(ErrFailedToParseJSON, errors.New("root is not an object"))
	}

	out := make(map[string]string)
	flattenJSON("", root, out)
	return out, nil
}

func flattenJSON(prefix string, node gjson.Result, out map[string]string) {
	node.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if prefix != "" {
			name = prefix + "." + name
		}
		switch {
		case value.IsObject():
			flattenJSON(name, value, out)
		case value.IsArray():
			out[name] = value.Raw
		case value.Type == gjson.Null:
			out[name] = ""
		default:
			out[name] = value.String()
		}
		return true
	})
}

// ParseLang reads key=value lines. Lines without '=' are ignored; the
// first '=' separates key from value and both are trimmed.
func ParseLang(content []byte) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, sc.Err()
}

// ParseSPL is the reserved third format. It always yields an empty table.
func ParseSPL([]byte) (map[string]string, error) {
	return map[string]string{}, nil
}
