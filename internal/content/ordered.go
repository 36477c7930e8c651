package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// eachMember walks a JSON object in source order, handing every key and raw
// value to fn. A JSON null is treated as an empty object.
func eachMember(data []byte, fn func(key string, raw json.RawMessage) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// Reference is one entry of a post's reference list.
type Reference struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// References keeps the author's ordering of a {"key": "citation"} object.
type References []Reference

func (r *References) UnmarshalJSON(data []byte) error {
	var out References
	err := eachMember(data, func(key string, raw json.RawMessage) error {
		var v looseString
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("reference %q: %w", key, err)
		}
		out = append(out, Reference{Key: key, Value: string(v)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("references: %w", err)
	}
	*r = out
	return nil
}

func (r References) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ref := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ref.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ref.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SkillTree is the nested skills mapping. Entries keep file order.
type SkillTree struct {
	Entries []SkillEntry
}

// SkillEntry is either a named list of skills or a named sub-tree.
type SkillEntry struct {
	Name     string
	Skills   []string
	Children *SkillTree
}

// IsList reports whether the entry holds skills rather than a sub-tree.
func (e SkillEntry) IsList() bool {
	return e.Children == nil
}

// Len returns the number of top-level entries.
func (t *SkillTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

func (t *SkillTree) UnmarshalJSON(data []byte) error {
	var entries []SkillEntry
	err := eachMember(data, func(key string, raw json.RawMessage) error {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return nil
		}
		switch raw[0] {
		case '[':
			var skills []looseString
			if err := json.Unmarshal(raw, &skills); err != nil {
				return fmt.Errorf("skills %q: %w", key, err)
			}
			list := stringsOf(skills)
			if list == nil {
				list = []string{}
			}
			entries = append(entries, SkillEntry{Name: key, Skills: list})
		case '{':
			child := &SkillTree{}
			if err := child.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("category %q: %w", key, err)
			}
			entries = append(entries, SkillEntry{Name: key, Children: child})
		}
		return nil
	})
	if err != nil {
		return err
	}
	t.Entries = entries
	return nil
}

func (t SkillTree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		var v []byte
		if e.IsList() {
			v, err = json.Marshal(e.Skills)
		} else {
			v, err = e.Children.MarshalJSON()
		}
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
