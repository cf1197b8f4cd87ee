package patients

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speps/go-hashids/v2"
)

const codePrefix = "HC-"

var ErrInvalidCode = errors.New("invalid patient code")

// Codec turns patient ids into public record codes such as HC-K4Q9ZP and back.
type Codec struct {
	h *hashids.HashID
}

func NewCodec(salt string) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 6
	hd.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("patients: hashids: %w", err)
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id int64) (string, error) {
	s, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return "", err
	}
	return codePrefix + s, nil
}

func (c *Codec) Decode(code string) (int64, error) {
	raw, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(code)), codePrefix)
	if !ok || raw == "" {
		return 0, ErrInvalidCode
	}
	ids, err := c.h.DecodeInt64WithError(raw)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidCode
	}
	return ids[0], nil
}
