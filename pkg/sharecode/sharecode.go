package sharecode

import (
	"errors"

	"github.com/speps/go-hashids/v2"
)

// Share codes are short kid-safe handles for approved artwork. Hashids over
// the post id: no enumeration by guessing sequential ids, decodable without
// a lookup table.
const (
	salt      = "doodly-share"
	minLength = 8
	alphabet  = "abcdefghjkmnpqrstuvwxyz23456789" // no 0/O, 1/l/i
)

var coder *hashids.HashID

func init() {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength
	hd.Alphabet = alphabet
	h, err := hashids.NewWithData(hd)
	if err != nil {
		panic(err)
	}
	coder = h
}

func Encode(postID uint64) (string, error) {
	return coder.EncodeInt64([]int64{int64(postID)})
}

func Decode(code string) (uint64, error) {
	ids, err := coder.DecodeInt64WithError(code)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 || ids[0] < 0 {
		return 0, errors.New("invalid share code")
	}
	return uint64(ids[0]), nil
}
