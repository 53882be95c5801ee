package profile

import (
	"github.com/fxamacker/cbor/v2"
)

// Codec serializes snapshots as deterministic CBOR, so equal snapshots
// always encode to equal bytes.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

func (c Codec) MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return c.enc.Marshal(s)
}

func (c Codec) UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := c.dec.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}
