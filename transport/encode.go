package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	errs "github.com/jrsteele09/go-transposit-sdk/internal/errors"
)

// encodeBody picks the encoder from the declared content type.
func encodeBody(contentType string, body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}

	if isForm(contentType) {
		form, err := formEncode(body)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(form), nil
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to encode request body")
	}
	return bytes.NewReader(b), nil
}

func isForm(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == ContentTypeForm
}

func formEncode(body any) (string, error) {
	switch b := body.(type) {
	case url.Values:
		return b.Encode(), nil
	case map[string]string:
		values := url.Values{}
		for k, v := range b {
			values.Set(k, v)
		}
		return values.Encode(), nil
	case map[string]any:
		values := url.Values{}
		for k, v := range b {
			values.Set(k, fmt.Sprint(v))
		}
		return values.Encode(), nil
	case string:
		return b, nil
	}
	return "", fmt.Errorf("%w: cannot form encode %T", errs.ErrUnsupported, body)
}
