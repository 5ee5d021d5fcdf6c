// Package forms builds the multipart/form-data payloads of the upload
// endpoints. Fields keep the order they were added in.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
)

// File is one uploaded file.
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

type part struct {
	key   string
	value string
	file  *File
}

// Multipart is an ordered list of text fields and files.
type Multipart struct {
	parts []part
}

func New() *Multipart {
	return &Multipart{}
}

// Add appends a text field.
func (m *Multipart) Add(key, value string) *Multipart {
	m.parts = append(m.parts, part{key: key, value: value})
	return m
}

func (m *Multipart) AddInt(key string, v int) *Multipart {
	return m.Add(key, strconv.Itoa(v))
}

func (m *Multipart) AddFloat(key string, v float64) *Multipart {
	return m.Add(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func (m *Multipart) AddBool(key string, v bool) *Multipart {
	return m.Add(key, strconv.FormatBool(v))
}

// AddRepeated appends every value under the same key, as in types[].
func (m *Multipart) AddRepeated(key string, values []string) *Multipart {
	for _, v := range values {
		m.Add(key, v)
	}
	return m
}

// AddIndexed appends values as key[0], key[1]...
func (m *Multipart) AddIndexed(key string, values []string) *Multipart {
	for i, v := range values {
		m.Add(fmt.Sprintf("%s[%d]", key, i), v)
	}
	return m
}

// AddJSON appends v encoded as a JSON text field.
func (m *Multipart) AddJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode field %s: %w", key, err)
	}
	m.Add(key, string(data))
	return nil
}

// AddFile appends a file under field.
func (m *Multipart) AddFile(f File) *Multipart {
	cp := f
	m.parts = append(m.parts, part{key: f.Field, file: &cp})
	return m
}

// Value returns the first text value stored under key.
func (m *Multipart) Value(key string) (string, bool) {
	for _, p := range m.parts {
		if p.file == nil && p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// Values returns every text value stored under key.
func (m *Multipart) Values(key string) []string {
	var out []string
	for _, p := range m.parts {
		if p.file == nil && p.key == key {
			out = append(out, p.value)
		}
	}
	return out
}

// Files returns the files stored under field.
func (m *Multipart) Files(field string) []File {
	var out []File
	for _, p := range m.parts {
		if p.file != nil && p.key == field {
			out = append(out, *p.file)
		}
	}
	return out
}

// Len counts fields and files.
func (m *Multipart) Len() int {
	return len(m.parts)
}

// Encode writes the payload and returns it with its content type, boundary
// included.
func (m *Multipart) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range m.parts {
		if p.file == nil {
			if err := w.WriteField(p.key, p.value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.key, err)
			}
			continue
		}

		ct := p.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.key, p.file.Name))
		h.Set("Content-Type", ct)
		fw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.key, err)
		}
		if _, err := fw.Write(p.file.Data); err != nil {
			return nil, "", fmt.Errorf("write file %s: %w", p.file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
