package num

import "strings"

// Dec represents an arbitrary-precision fixed-point decimal as an unscaled
// integer coefficient (no leading zeros, Sign==0 iff the value is zero) and
// a non-negative scale: value == Sign * Coef * 10^-Scale.
type Dec struct {
	Sign  int8
	Coef  []byte
	Scale uint32
}

// ParseDec parses a decimal lexical value (the grammar decimal64 and
// YANG "range"/"length" bound tokens share) into a Dec.
func ParseDec(b []byte) (Dec, *ParseError) {
	if len(b) == 0 {
		return Dec{}, &ParseError{Kind: ParseEmpty}
	}

	sign := int8(1)
	i := 0
	switch b[0] {
	case '+':
		i++
	case '-':
		sign = -1
		i++
	}

	var intPart, fracPart []byte
	dots := 0
	cur := &intPart
	for _, c := range b[i:] {
		switch {
		case c == '.':
			dots++
			if dots > 1 {
				return Dec{}, &ParseError{Kind: ParseMultipleDots}
			}
			cur = &fracPart
		case isDigit(c):
			*cur = append(*cur, c)
		default:
			return Dec{}, &ParseError{Kind: ParseBadChar}
		}
	}
	if len(intPart) == 0 && len(fracPart) == 0 {
		return Dec{}, &ParseError{Kind: ParseNoDigits}
	}

	combined := append(append([]byte(nil), intPart...), fracPart...)
	scale := uint32(len(fracPart))

	if allZeros(combined) {
		return Dec{Sign: 0, Coef: zeroDigits, Scale: 0}, nil
	}

	combined = trimLeadingZeros(combined)
	for scale > 0 && combined[len(combined)-1] == '0' {
		combined = combined[:len(combined)-1]
		scale--
	}

	return Dec{Sign: sign, Coef: combined, Scale: scale}, nil
}

// Compare compares two Dec values irrespective of their individual scales.
func (d Dec) Compare(other Dec) int {
	if d.Sign == 0 && other.Sign == 0 {
		return 0
	}
	if d.Sign != other.Sign {
		if d.Sign < other.Sign {
			return -1
		}
		return 1
	}

	commonScale := d.Scale
	if other.Scale > commonScale {
		commonScale = other.Scale
	}
	aCoef := scaleUpDigits(d.Coef, commonScale-d.Scale)
	bCoef := scaleUpDigits(other.Coef, commonScale-other.Scale)

	cmp := compareDigits(aCoef, bCoef)
	if d.Sign < 0 {
		cmp = -cmp
	}
	return cmp
}

// RenderCanonical appends the canonical "always has a fractional part"
// lexical form to dst.
func (d Dec) RenderCanonical(dst []byte) []byte {
	if d.Sign < 0 {
		dst = append(dst, '-')
	}
	coef := d.Coef
	if len(coef) == 0 {
		coef = zeroDigits
	}
	if d.Scale == 0 {
		dst = append(dst, coef...)
		return append(dst, '.', '0')
	}
	if uint32(len(coef)) <= d.Scale {
		dst = append(dst, '0', '.')
		dst = append(dst, []byte(strings.Repeat("0", int(d.Scale)-len(coef)))...)
		return append(dst, coef...)
	}
	split := len(coef) - int(d.Scale)
	dst = append(dst, coef[:split]...)
	dst = append(dst, '.')
	return append(dst, coef[split:]...)
}

// DecFromScaledInt builds a normalized Dec from an unscaled coefficient and
// an explicit scale.
func DecFromScaledInt(v Int, scale uint32) Dec {
	if v.Sign == 0 {
		return Dec{Sign: 0, Coef: zeroDigits, Scale: 0}
	}
	coef := append([]byte(nil), v.Digits...)
	for scale > 0 && len(coef) > 0 && coef[len(coef)-1] == '0' {
		coef = coef[:len(coef)-1]
		scale--
	}
	if len(coef) == 0 {
		return Dec{Sign: 0, Coef: zeroDigits, Scale: 0}
	}
	return Dec{Sign: v.Sign, Coef: coef, Scale: scale}
}

// DecToScaledInt returns dec's coefficient rescaled to targetScale. Scaling
// up (targetScale >= dec.Scale) is exact; scaling down truncates digits.
func DecToScaledInt(dec Dec, targetScale uint32) Int {
	if dec.Sign == 0 {
		return IntZero
	}
	if targetScale >= dec.Scale {
		return Int{Sign: dec.Sign, Digits: scaleUpDigits(dec.Coef, targetScale-dec.Scale)}
	}
	drop := int(dec.Scale - targetScale)
	if drop >= len(dec.Coef) {
		return IntZero
	}
	digits := trimLeadingZeros(dec.Coef[:len(dec.Coef)-drop])
	if len(digits) == 0 {
		return IntZero
	}
	return Int{Sign: dec.Sign, Digits: digits}
}

func scaleUpDigits(digits []byte, n uint32) []byte {
	if n == 0 {
		return digits
	}
	out := make([]byte, len(digits)+int(n))
	copy(out, digits)
	for i := len(digits); i < len(out); i++ {
		out[i] = '0'
	}
	return out
}
