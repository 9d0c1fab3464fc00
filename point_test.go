// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// toyCurve returns y² = x³ + 7 over the integers modulo 223 with the base point
// (47, 71), which generates a subgroup of order 21.
func toyCurve(t *testing.T) *CurveParams {
	t.Helper()
	curve, err := NewCurveParams("toy223", big.NewInt(223), big.NewInt(0),
		big.NewInt(7), big.NewInt(47), big.NewInt(71), big.NewInt(21),
		big.NewInt(1))
	require.NoError(t, err)
	return curve
}

// toyPoints returns every affine point of the toy curve.
func toyPoints(t *testing.T, curve *CurveParams) []*Point {
	t.Helper()
	var points []*Point
	for x := int64(0); x < 223; x++ {
		for y := int64(0); y < 223; y++ {
			if (y*y-(x*x*x+7))%223 != 0 {
				continue
			}
			pt, err := curve.NewPoint(big.NewInt(x), big.NewInt(y))
			require.NoError(t, err)
			points = append(points, pt)
		}
	}
	return points
}

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected.  It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

func TestNewCurveParams(t *testing.T) {
	_, err := NewCurveParams("bad", big.NewInt(2), big.NewInt(0),
		big.NewInt(7), big.NewInt(0), big.NewInt(0), big.NewInt(3), nil)
	require.True(t, errors.Is(err, ErrInvalidModulus), "got %v", err)

	_, err = NewCurveParams("bad", big.NewInt(223), big.NewInt(0),
		big.NewInt(7), big.NewInt(47), big.NewInt(71), big.NewInt(1), nil)
	require.True(t, errors.Is(err, ErrInvalidModulus), "got %v", err)

	_, err = NewCurveParams("bad", big.NewInt(223), big.NewInt(0),
		big.NewInt(7), big.NewInt(47), big.NewInt(72), big.NewInt(21), nil)
	require.True(t, errors.Is(err, ErrPointNotOnCurve), "got %v", err)

	curve := toyCurve(t)
	require.Equal(t, "toy223", curve.Name())
	require.Equal(t, int64(10), curve.HalfOrder().Int64())
	require.Equal(t, 1, curve.ByteSize())

	// Accessors return copies.
	curve.P().SetInt64(5)
	require.Equal(t, int64(223), curve.P().Int64())
}

func TestS256Params(t *testing.T) {
	curve := S256()
	require.Same(t, curve, S256())
	require.Equal(t, "secp256k1", curve.Name())
	require.Equal(t, 256, curve.BitSize())
	require.Equal(t, 32, curve.ByteSize())
	require.Equal(t, 32, curve.ScalarSize())
	require.True(t, curve.A().IsZero())
	require.Equal(t, int64(7), curve.B().Value().Int64())
	require.Equal(t, int64(1), curve.H().Int64())
	require.True(t, curve.IsOnCurve(curve.G()))

	nG, err := curve.ScalarBaseMult(curve.N())
	require.NoError(t, err)
	require.True(t, nG.IsInfinity(), "nG = %v", nG)
}

// TestToyGroupLaw checks the group law over every point of the toy curve.
func TestToyGroupLaw(t *testing.T) {
	curve := toyCurve(t)
	points := toyPoints(t, curve)
	inf := Infinity()

	for _, p := range points {
		// P + ∞ = P and ∞ + P = P.
		sum, err := curve.Add(p, inf)
		require.NoError(t, err)
		require.True(t, sum.Equals(p))
		sum, err = curve.Add(inf, p)
		require.NoError(t, err)
		require.True(t, sum.Equals(p))

		// P + (-P) = ∞.
		sum, err = curve.Add(p, curve.Negate(p))
		require.NoError(t, err)
		require.True(t, sum.IsInfinity(), "%v + -%v = %v", p, p, sum)

		// 2P = P + P.
		dbl, err := curve.Double(p)
		require.NoError(t, err)
		sum, err = curve.Add(p, p)
		require.NoError(t, err)
		require.True(t, dbl.Equals(sum))
		require.True(t, curve.IsOnCurve(dbl))

		for _, q := range points[:10] {
			// P + Q = Q + P and the result is on the curve.
			pq, err := curve.Add(p, q)
			require.NoError(t, err)
			qp, err := curve.Add(q, p)
			require.NoError(t, err)
			require.True(t, pq.Equals(qp))
			require.True(t, curve.IsOnCurve(pq))
		}
	}
}

// TestVerticalTangent ensures doubling a point with y = 0 is ∞.
func TestVerticalTangent(t *testing.T) {
	// y² = x³ - x over the integers modulo 23 has the points (0, 0), (1, 0)
	// and (22, 0) of order 2.
	curve, err := NewCurveParams("order2", big.NewInt(23), big.NewInt(-1),
		big.NewInt(0), big.NewInt(1), big.NewInt(0), big.NewInt(2), nil)
	require.NoError(t, err)

	for _, x := range []int64{0, 1, 22} {
		pt, err := curve.NewPoint(big.NewInt(x), big.NewInt(0))
		require.NoError(t, err)
		dbl, err := curve.Double(pt)
		require.NoError(t, err)
		require.True(t, dbl.IsInfinity(), "2(%d, 0) = %v", x, dbl)
		sum, err := curve.Add(pt, pt)
		require.NoError(t, err)
		require.True(t, sum.IsInfinity())
	}
}

// TestScalarMultNaive ensures every strategy agrees with repeated addition.
func TestScalarMultNaive(t *testing.T) {
	curves := []*CurveParams{toyCurve(t), S256()}
	strategies := []MultStrategy{DoubleAndAdd, MontgomeryLadder}

	for _, curve := range curves {
		g := curve.G()
		want := Infinity()
		for k := int64(0); k <= 50; k++ {
			for _, strategy := range strategies {
				got, err := curve.ScalarMultWith(strategy, big.NewInt(k), g)
				require.NoError(t, err)
				if !got.Equals(want) {
					t.Fatalf("%s %v k=%d: got %v want %v", curve.Name(),
						strategy, k, got, want)
				}
			}

			var err error
			want, err = curve.Add(want, g)
			require.NoError(t, err)
		}
	}
}

func TestScalarMultEdgeCases(t *testing.T) {
	curve := toyCurve(t)
	g := curve.G()

	// 0P = ∞ and k∞ = ∞.
	for _, strategy := range []MultStrategy{DoubleAndAdd, MontgomeryLadder} {
		got, err := curve.ScalarMultWith(strategy, big.NewInt(0), g)
		require.NoError(t, err)
		require.True(t, got.IsInfinity())
		got, err = curve.ScalarMultWith(strategy, big.NewInt(5), Infinity())
		require.NoError(t, err)
		require.True(t, got.IsInfinity())
	}

	// nG = ∞ and (n+1)G = G.
	nG, err := curve.ScalarMult(big.NewInt(21), g)
	require.NoError(t, err)
	require.True(t, nG.IsInfinity())
	n1G, err := curve.ScalarMult(big.NewInt(22), g)
	require.NoError(t, err)
	require.True(t, n1G.Equals(g))

	// (-k)P = k(-P).
	neg, err := curve.ScalarMult(big.NewInt(-5), g)
	require.NoError(t, err)
	pos, err := curve.ScalarMult(big.NewInt(5), curve.Negate(g))
	require.NoError(t, err)
	require.True(t, neg.Equals(pos))

	_, err = curve.ScalarMultWith(MultStrategy(7), big.NewInt(5), g)
	require.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	// Points from another field are rejected.
	_, err = S256().ScalarMult(big.NewInt(2), g)
	require.True(t, errors.Is(err, ErrModulusMismatch), "got %v", err)
}

// TestStrategiesAgreeSecp256k1 checks both strategies on full size scalars.
func TestStrategiesAgreeSecp256k1(t *testing.T) {
	curve := S256()
	scalars := []string{
		"1",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
		"aa5e28d6a97a2479a65527f7290311a3624d4cc0fa1578598ee3c2613bf99522",
		"7e2b897b8cebc6361663ad410835639826d590f393d90a9538881735256dfae3",
	}
	for _, s := range scalars {
		k, _ := new(big.Int).SetString(s, 16)
		a, err := curve.ScalarMultWith(DoubleAndAdd, k, curve.G())
		require.NoError(t, err)
		b, err := curve.ScalarMultWith(MontgomeryLadder, k, curve.G())
		require.NoError(t, err)
		require.True(t, a.Equals(b), "k=%s: %v != %v", s, a, b)
	}
}

func TestNewPointNotOnCurve(t *testing.T) {
	curve := toyCurve(t)
	_, err := curve.NewPoint(big.NewInt(47), big.NewInt(72))
	require.True(t, errors.Is(err, ErrPointNotOnCurve), "got %v", err)
	_, err = curve.NewPoint(big.NewInt(300), big.NewInt(71))
	require.True(t, errors.Is(err, ErrFieldOverflow), "got %v", err)
	_, err = curve.NewPoint(nil, big.NewInt(71))
	require.True(t, errors.Is(err, ErrPointNotOnCurve), "got %v", err)
}

// TestZeroPoint ensures a point without coordinates is rejected instead of
// being dereferenced.
func TestZeroPoint(t *testing.T) {
	curve := S256()
	zero := &Point{}
	require.False(t, curve.IsOnCurve(zero))
	require.False(t, curve.IsOnCurve(nil))

	_, err := curve.Add(zero, curve.G())
	require.True(t, errors.Is(err, ErrPointNotOnCurve), "got %v", err)
	_, err = curve.Double(zero)
	require.True(t, errors.Is(err, ErrPointNotOnCurve), "got %v", err)
	_, err = curve.ScalarMult(big.NewInt(2), zero)
	require.True(t, errors.Is(err, ErrPointNotOnCurve), "got %v", err)

	_, err = NewPublicKey(zero)
	require.True(t, errors.Is(err, ErrInvalidPublicKey), "got %v", err)
}

// TestParsePoint ensures the SEC1 encodings decode to the expected points.
func TestParsePoint(t *testing.T) {
	curve := S256()
	g := curve.G()
	const gx = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	const gy = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"

	tests := []struct {
		name string
		in   string
		err  error
		want *Point
	}{{
		name: "compressed G",
		in:   "02" + gx,
		want: g,
	}, {
		name: "uncompressed G",
		in:   "04" + gx + gy,
		want: g,
	}, {
		name: "compressed -G",
		in:   "03" + gx,
		want: curve.Negate(g),
	}, {
		name: "infinity",
		in:   "00",
		want: Infinity(),
	}, {
		name: "empty",
		in:   "",
		err:  ErrInvalidPointEncoding,
	}, {
		name: "infinity with trailing data",
		in:   "0000",
		err:  ErrInvalidPointEncoding,
	}, {
		name: "hybrid format",
		in:   "06" + gx + gy,
		err:  ErrInvalidPointEncoding,
	}, {
		name: "short compressed",
		in:   "02" + gx[2:],
		err:  ErrInvalidPointEncoding,
	}, {
		name: "x equal to p",
		in:   "02fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		err:  ErrInvalidPointEncoding,
	}, {
		name: "uncompressed off curve",
		in:   "04" + gx + gx,
		err:  ErrPointNotOnCurve,
	}}

	for _, test := range tests {
		pt, err := curve.ParsePoint(hexToBytes(test.in))
		if !errors.Is(err, test.err) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				test.err)
			continue
		}
		if test.err != nil {
			continue
		}
		if !pt.Equals(test.want) {
			t.Errorf("%s: mismatched point -- got %s, want %s", test.name,
				spew.Sdump(pt), spew.Sdump(test.want))
		}
	}
}

// TestParsePointNoSquareRoot ensures an x coordinate for which x³ + 7 is not a
// square is rejected.
func TestParsePointNoSquareRoot(t *testing.T) {
	curve := S256()
	for x := int64(1); ; x++ {
		fx := newFieldElement(big.NewInt(x), curve.p)
		if _, ok := curve.polynomial(fx).Sqrt(); ok {
			continue
		}
		_, err := curve.ParsePoint(append([]byte{0x02}, fx.Bytes()...))
		require.True(t, errors.Is(err, ErrPointNotOnCurve), "x=%d: got %v", x, err)
		return
	}
}

// TestPointSerializeRoundTrip ensures every point of the toy curve survives
// both encodings.
func TestPointSerializeRoundTrip(t *testing.T) {
	curve := toyCurve(t)
	points := append(toyPoints(t, curve), Infinity())
	for _, pt := range points {
		for _, b := range [][]byte{pt.SerializeCompressed(), pt.SerializeUncompressed()} {
			got, err := curve.ParsePoint(b)
			require.NoError(t, err, "%x", b)
			require.True(t, got.Equals(pt), "%x: got %v want %v", b, got, pt)
		}
	}
	require.Equal(t, []byte{0x00}, Infinity().SerializeCompressed())
	require.Equal(t, []byte{0x00}, Infinity().SerializeUncompressed())
}
