package num

import "math/big"

// FromInt64 converts a native signed integer to an Int.
func FromInt64(v int64) Int {
	if v == 0 {
		return IntZero
	}
	sign := int8(1)
	bi := big.NewInt(v)
	if bi.Sign() < 0 {
		sign = -1
		bi.Neg(bi)
	}
	return Int{Sign: sign, Digits: []byte(bi.String())}
}

// Add returns a + b.
func Add(a, b Int) Int {
	sum := new(big.Int).Add(toBig(a), toBig(b))
	return fromBig(sum)
}

// Mul returns a * b.
func Mul(a, b Int) Int {
	prod := new(big.Int).Mul(toBig(a), toBig(b))
	return fromBig(prod)
}

func toBig(v Int) *big.Int {
	bi := new(big.Int)
	digits := v.Digits
	if len(digits) == 0 {
		digits = zeroDigits
	}
	bi.SetString(string(digits), 10)
	if v.Sign < 0 {
		bi.Neg(bi)
	}
	return bi
}

func fromBig(bi *big.Int) Int {
	if bi.Sign() == 0 {
		return IntZero
	}
	sign := int8(1)
	if bi.Sign() < 0 {
		sign = -1
	}
	s := bi.String()
	if s[0] == '-' {
		s = s[1:]
	}
	return Int{Sign: sign, Digits: []byte(s)}
}
