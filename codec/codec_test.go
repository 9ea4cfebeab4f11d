package codec

import (
	"bytes"
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"
)

type pair struct {
	a, b uint64
}

func (p *pair) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, p.a)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, p.b)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (p *pair) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		p.a = field
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		p.b = field
	}
	return total, nil
}

func TestEncodeDecode(t *testing.T) {
	buf, err := Encode(&pair{a: 1, b: 1 << 40})
	require.NoError(t, err)
	require.Equal(t, buf, MustEncode(&pair{a: 1, b: 1 << 40}))

	var p pair
	require.NoError(t, Decode(buf, &p))
	require.Equal(t, pair{a: 1, b: 1 << 40}, p)

	var w bytes.Buffer
	n, err := EncodeTo(&w, &p)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, buf, w.Bytes())

	require.ErrorContains(t, Decode(buf[:1], &p), "decode from buffer")
}

func TestEncodeReturnsCopy(t *testing.T) {
	first, err := Encode(&pair{a: 1})
	require.NoError(t, err)
	_, err = Encode(&pair{a: 2})
	require.NoError(t, err)
	require.Equal(t, MustEncode(&pair{a: 1}), first)
}
