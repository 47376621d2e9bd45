package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FormFile is a file part of a multipart request.
type FormFile struct {
	// Name is the file name sent to the server.
	Name    string
	Content io.Reader
}

// Form is a multipart/form-data payload. Parts are written in the order
// they were added.
type Form struct {
	parts []formPart
}

type formPart struct {
	field string
	value string
	file  *FormFile
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Add(field, value string) *Form {
	f.parts = append(f.parts, formPart{field: field, value: value})
	return f
}

func (f *Form) AddFile(field string, file FormFile) *Form {
	f.parts = append(f.parts, formPart{field: field, file: &file})
	return f
}

// encode renders the form and returns the body and its content type.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.file == nil {
			if err := w.WriteField(p.field, p.value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.field, err)
			}
			continue
		}
		fw, err := w.CreateFormFile(p.field, p.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", p.field, err)
		}
		if _, err := io.Copy(fw, p.file.Content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", p.file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
