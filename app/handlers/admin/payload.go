package admin

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/utils/media"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const maxPayloadSize = 3*media.MaxImageSize + 1<<20

// payload is a flattened admin request body. JSON, urlencoded and multipart
// bodies all end up as field -> string plus the uploaded files.
type payload struct {
	values     map[string]string
	files      map[string]*multipart.FileHeader
	typeErrors map[string][]string
}

func (p *payload) has(field string) bool {
	_, ok := p.values[field]
	return ok
}

// string returns the trimmed value for field, or fallback when absent.
func (p *payload) string(field, fallback string) string {
	if v, ok := p.values[field]; ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (p *payload) file(field string) *multipart.FileHeader {
	return p.files[field]
}

func readPayload(w http.ResponseWriter, r *http.Request) (*payload, error) {
	p := &payload{
		values:     map[string]string{},
		files:      map[string]*multipart.FileHeader{},
		typeErrors: map[string][]string{},
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(media.MaxImageSize); err != nil {
			return nil, errors.Wrap(err, "parse multipart form")
		}
		for field, vals := range r.MultipartForm.Value {
			if len(vals) > 0 {
				p.values[field] = vals[0]
			}
		}
		for field, fhs := range r.MultipartForm.File {
			if len(fhs) > 0 {
				p.files[field] = fhs[0]
			}
		}
		return p, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, errors.Wrap(err, "parse form")
		}
		for field, vals := range r.PostForm {
			if len(vals) > 0 {
				p.values[field] = vals[0]
			}
		}
		return p, nil
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if err == io.EOF {
			return p, nil
		}
		return nil, errors.Wrap(err, "decode JSON body")
	}
	for field, value := range raw {
		switch v := value.(type) {
		case nil:
			p.values[field] = ""
		case map[string]interface{}, []interface{}:
			p.typeErrors[field] = []string{"Not a valid string."}
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				p.typeErrors[field] = []string{"Not a valid string."}
				continue
			}
			p.values[field] = s
		}
	}
	return p, nil
}
