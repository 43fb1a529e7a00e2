// ABOUTME: Multipart form payload for requests carrying file parts
// ABOUTME: Passing a *Form to Client.Do switches the encoding automatically

package api

import (
	"bytes"
	"io"
	"mime/multipart"
)

type filePart struct {
	field    string
	filename string
	r        io.Reader
}

// Form is a request payload with text fields and file parts. The client
// encodes it as multipart/form-data; callers never set headers.
type Form struct {
	fields map[string]string
	files  []filePart
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{fields: make(map[string]string)}
}

// Set adds or replaces a text field.
func (f *Form) Set(key, value string) *Form {
	f.fields[key] = value
	return f
}

// File adds a file part read from r.
func (f *Form) File(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, filePart{field: field, filename: filename, r: r})
	return f
}

// encode renders the multipart body and returns it with its content type
// (which carries the generated boundary).
func (f *Form) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for key, value := range f.fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	for _, fp := range f.files {
		part, err := w.CreateFormFile(fp.field, fp.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, fp.r); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
