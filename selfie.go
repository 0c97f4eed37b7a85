package pslcore

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// selfieMagic is the structured-form version tag, bumped whenever the
// word layout in buffer.go changes incompatibly.
const selfieMagic int32 = 2

// Selfie is the structured snapshot form from spec.md §6: the whole
// Buffer re-expressed as a word slice, portable across processes that
// agree on selfieMagic.
type Selfie struct {
	Magic int32
	Words []uint32
}

// ToSelfie captures l's Buffer as a structured Selfie.
func (l *PublicSuffixList) ToSelfie() Selfie {
	data := l.buf.byteView()
	n := len(data) / 4
	words := make([]uint32, n)
	for i := 0; i < n; i++ {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return Selfie{Magic: selfieMagic, Words: words}
}

// FromSelfie restores l's Buffer from a structured Selfie previously
// produced by ToSelfie. It rejects a mismatched Magic rather than
// silently misinterpreting a future or incompatible layout.
func (l *PublicSuffixList) FromSelfie(s Selfie) error {
	if s.Magic != selfieMagic {
		return fmt.Errorf("pslcore: selfie magic %d, want %d", s.Magic, selfieMagic)
	}
	l.buf = Buffer{}
	l.buf.reserve(len(s.Words) * 4)
	data := l.buf.byteView()
	for i, w := range s.Words {
		binary.LittleEndian.PutUint32(data[i*4:i*4+4], w)
	}
	l.lastHostname = ""
	l.prepared = false
	return nil
}

// BytesEncoderFunc and BytesDecoderFunc let a caller supply a bespoke
// codec for the string snapshot form; when nil, ToSelfieString and
// FromSelfieString fall back to encoding/base64.StdEncoding (SPEC_FULL.md
// §6.3: no example repo in the pack carries a dedicated bytes<->string
// codec library, so base64 is the one justified stdlib exception).
type BytesEncoderFunc func([]byte) string
type BytesDecoderFunc func(string) ([]byte, error)

// ToSelfieString captures l's Buffer as the string snapshot form: the
// decimal version tag, a tab, then encode(rawBytes).
func (l *PublicSuffixList) ToSelfieString(encode BytesEncoderFunc) string {
	if encode == nil {
		encode = base64.StdEncoding.EncodeToString
	}
	raw := l.buf.byteView()
	return strconv.Itoa(int(selfieMagic)) + "\t" + encode(raw)
}

// FromSelfieString restores l's Buffer from the string snapshot form
// previously produced by ToSelfieString.
func (l *PublicSuffixList) FromSelfieString(s string, decode BytesDecoderFunc) error {
	if decode == nil {
		decode = base64.StdEncoding.DecodeString
	}
	tag, payload, ok := strings.Cut(s, "\t")
	if !ok {
		return errors.New("pslcore: malformed selfie string, missing version tag")
	}
	version, err := strconv.Atoi(tag)
	if err != nil {
		return fmt.Errorf("pslcore: malformed selfie version tag: %w", err)
	}
	if int32(version) != selfieMagic {
		return fmt.Errorf("pslcore: selfie magic %d, want %d", version, selfieMagic)
	}
	raw, err := decode(payload)
	if err != nil {
		return fmt.Errorf("pslcore: decoding selfie payload: %w", err)
	}
	l.buf = Buffer{data: raw}
	l.lastHostname = ""
	l.prepared = false
	return nil
}
