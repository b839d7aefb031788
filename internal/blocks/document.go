package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBlockTypeRequired = errors.New("blocks: block type is required")
	ErrBlockDecode       = errors.New("blocks: block decode failed")
)

type envelope struct {
	Type string `json:"type"`
}

// MarshalJSON writes every block as an object carrying its `type`
// discriminator. Unknown blocks are written back as they were read.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	items := make([]json.RawMessage, 0, len(d))
	for index, block := range d {
		encoded, err := EncodeBlock(block)
		if err != nil {
			return nil, fmt.Errorf("blocks: encode block %d: %w", index, err)
		}
		items = append(items, encoded)
	}
	return json.Marshal(items)
}

// UnmarshalJSON decodes a block array. Types outside the closed set decode to
// Unknown rather than failing.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBlockDecode, err)
	}
	doc := make(Document, 0, len(raw))
	for index, item := range raw {
		block, err := DecodeBlock(item)
		if err != nil {
			return fmt.Errorf("block %d: %w", index, err)
		}
		doc = append(doc, block)
	}
	*d = doc
	return nil
}

// Parse decodes a JSON block array.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeBlock decodes a single block object.
func DecodeBlock(data json.RawMessage) (Block, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockDecode, err)
	}
	kind := Kind(strings.TrimSpace(env.Type))
	if kind == "" {
		return nil, ErrBlockTypeRequired
	}

	var (
		block Block
		err   error
	)
	switch kind {
	case KindParagraph:
		block, err = decodeAs[Paragraph](data)
	case KindHeading:
		block, err = decodeAs[Heading](data)
	case KindImage:
		block, err = decodeAs[Image](data)
	case KindVideo:
		block, err = decodeAs[Video](data)
	case KindYouTube:
		block, err = decodeAs[YouTube](data)
	case KindGIF:
		block, err = decodeAs[GIF](data)
	case KindList:
		block, err = decodeAs[List](data)
	case KindLinkBlock:
		block, err = decodeAs[LinkBlock](data)
	case KindBlockquote:
		block, err = decodeAs[Blockquote](data)
	case KindCallout:
		block, err = decodeAs[Callout](data)
	case KindCode:
		block, err = decodeAs[Code](data)
	case KindHighlight:
		block, err = decodeAs[Highlight](data)
	case KindDivider:
		block, err = decodeAs[Divider](data)
	case KindFeatureGrid:
		block, err = decodeAs[FeatureGrid](data)
	case KindComparisonTable:
		block, err = decodeAs[ComparisonTable](data)
	case KindStyledText:
		block, err = decodeAs[StyledText](data)
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return Unknown{Type: string(kind), Raw: raw}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockDecode, kind, err)
	}
	return block, nil
}

// EncodeBlock encodes a single block with its `type` field first.
func EncodeBlock(block Block) (json.RawMessage, error) {
	if block == nil {
		return nil, ErrBlockTypeRequired
	}
	if unknown, ok := block.(Unknown); ok {
		if len(bytes.TrimSpace(unknown.Raw)) > 0 {
			return unknown.Raw, nil
		}
		return json.Marshal(envelope{Type: unknown.Type})
	}

	body, err := json.Marshal(block)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(envelope{Type: string(block.Kind())})
	if err != nil {
		return nil, err
	}
	// Splice `{"type":"x"}` with the variant's own object.
	fields := bytes.TrimSpace(body)
	fields = bytes.TrimPrefix(fields, []byte("{"))
	fields = bytes.TrimSuffix(fields, []byte("}"))
	if len(bytes.TrimSpace(fields)) == 0 {
		return head, nil
	}
	out := make([]byte, 0, len(head)+len(fields)+1)
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, fields...)
	out = append(out, '}')
	return out, nil
}

func decodeAs[T Block](data []byte) (Block, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, block := range d {
		out[i] = cloneBlock(block)
	}
	return out
}

func cloneBlock(block Block) Block {
	switch typed := block.(type) {
	case List:
		typed.Items = cloneSlice(typed.Items)
		return typed
	case FeatureGrid:
		typed.Items = cloneSlice(typed.Items)
		return typed
	case ComparisonTable:
		typed.Headers = cloneSlice(typed.Headers)
		if typed.Rows != nil {
			rows := make([][]string, len(typed.Rows))
			for i, row := range typed.Rows {
				rows[i] = cloneSlice(row)
			}
			typed.Rows = rows
		}
		return typed
	case Unknown:
		typed.Raw = append(json.RawMessage(nil), typed.Raw...)
		return typed
	default:
		return block
	}
}

// cloneSlice copies values, keeping nil and empty distinct so empty arrays
// encode as [] rather than null.
func cloneSlice[T any](values []T) []T {
	if values == nil {
		return nil
	}
	return append(make([]T, 0, len(values)), values...)
}
