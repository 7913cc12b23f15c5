package utils

import (
	"crypto/rand"
	"math/big"
)

// CodeCharset is used for check-in codes and payment references.
const CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	CheckInCodeLength = 8
	ReferenceLength   = 12
)

func GenerateCode(length int) (string, error) {
	max := big.NewInt(int64(len(CodeCharset)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = CodeCharset[n.Int64()]
	}
	return string(code), nil
}

func GenerateCheckInCode() (string, error) {
	return GenerateCode(CheckInCodeLength)
}

func GenerateReference() (string, error) {
	return GenerateCode(ReferenceLength)
}
