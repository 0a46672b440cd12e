package engine

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

type dupFrame struct {
	array     bool
	keys      map[string]struct{}
	expectKey bool
	key       string // last key read in an object frame
	index     int    // next element index in an array frame
	seg       string // segment of this frame within its parent
}

// DuplicateKey scans a JSON document and returns the JSON Pointer of the
// first object key that repeats within its object, or "" when keys are
// unique. Decoding into a map keeps only the last occurrence, so callers run
// this on the raw bytes.
func DuplicateKey(data []byte) (string, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []*dupFrame

	// next returns the segment of the value starting in the top frame and
	// advances the frame past it.
	next := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.array {
			s := strconv.Itoa(top.index)
			top.index++
			return s
		}
		top.expectKey = true
		return top.key
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case '{', '[':
				seg := next()
				stack = append(stack, &dupFrame{
					array:     v == '[',
					keys:      map[string]struct{}{},
					expectKey: v == '{',
					seg:       seg,
				})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		case string:
			if n := len(stack); n > 0 && !stack[n-1].array && stack[n-1].expectKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					return pointerOf(stack, v), nil
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectKey = false
				continue
			}
			next()
		default:
			next()
		}
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointerOf(stack []*dupFrame, key string) string {
	var b strings.Builder
	for _, f := range stack[1:] {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(f.seg))
	}
	b.WriteByte('/')
	b.WriteString(pointerEscaper.Replace(key))
	return b.String()
}
